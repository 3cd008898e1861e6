package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/moura95/hft-simulator/internal/orderbook"
)

func sampleTrade(seq uint64) orderbook.TradeEvent {
	return orderbook.TradeEvent{
		Seq:           seq,
		BuyOrderID:    int64(seq*10 + 1),
		SellOrderID:   int64(seq*10 + 2),
		Price:         100 + float64(seq)/4,
		Quantity:      int64(seq),
		Timestamp:     1_625_158_800_000 + int64(seq),
		AggressorSide: orderbook.Sell,
	}
}

func openJournal(t *testing.T, dir string) *Journal {
	t.Helper()
	j, err := Open(dir)
	require.NoError(t, err)
	return j
}

func TestCodec_SkipsUnknownFields(t *testing.T) {
	tr := sampleTrade(3)
	b := encodeTrade(tr)
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future field")

	got, err := decodeTrade(b)
	require.NoError(t, err)
	require.Equal(t, tr, got)
}

func TestCodec_Corrupt(t *testing.T) {
	b := encodeTrade(sampleTrade(1))
	_, err := decodeTrade(b[:len(b)-2])
	require.ErrorIs(t, err, ErrCorruptRecord)
}

func TestJournal_AppendAndRecent(t *testing.T) {
	j := openJournal(t, t.TempDir())
	defer j.Close()

	for seq := uint64(1); seq <= 5; seq++ {
		pos, err := j.Append(sampleTrade(seq))
		require.NoError(t, err)
		require.Equal(t, seq, pos)
	}
	require.Equal(t, uint64(5), j.Len())

	recent, err := j.Recent(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, []uint64{5, 4, 3}, []uint64{recent[0].Seq, recent[1].Seq, recent[2].Seq})
	require.Equal(t, sampleTrade(5), recent[0])

	all, err := j.Recent(100)
	require.NoError(t, err)
	require.Len(t, all, 5)

	none, err := j.Recent(0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestJournal_Get(t *testing.T) {
	j := openJournal(t, t.TempDir())
	defer j.Close()

	j.Record(sampleTrade(1))

	got, err := j.Get(1)
	require.NoError(t, err)
	require.Equal(t, sampleTrade(1), got)

	_, err = j.Get(2)
	require.ErrorIs(t, err, ErrTradeNotFound)
}

func TestJournal_PositionsSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	j := openJournal(t, dir)
	j.Record(sampleTrade(1))
	j.Record(sampleTrade(2))
	require.NoError(t, j.Close())

	// A fresh book numbers its trades from 1 again.
	j = openJournal(t, dir)
	defer j.Close()
	require.Equal(t, uint64(2), j.Len())

	pos, err := j.Append(sampleTrade(1))
	require.NoError(t, err)
	require.Equal(t, uint64(3), pos)

	var seen []uint64
	err = j.Replay(0, func(pos uint64, tr orderbook.TradeEvent) error {
		seen = append(seen, pos)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, seen)
}

func TestJournal_ReplayFromAndStop(t *testing.T) {
	j := openJournal(t, t.TempDir())
	defer j.Close()

	for seq := uint64(1); seq <= 4; seq++ {
		j.Record(sampleTrade(seq))
	}

	stop := errors.New("stop")
	var seen []uint64
	err := j.Replay(2, func(pos uint64, tr orderbook.TradeEvent) error {
		seen = append(seen, tr.Seq)
		if len(seen) == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, []uint64{2, 3}, seen)
}
