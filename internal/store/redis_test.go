package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T, prefix string) (*RedisGateway, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisGateway(client, prefix), mr
}

func TestRedisGatewayRoundTrip(t *testing.T) {
	gw, mr := testRedis(t, "tq:")
	ctx := context.Background()

	require.NoError(t, gw.Set(ctx, KeyStats, []byte(`{"energy":12}`)))

	got, err := gw.Get(ctx, KeyStats)
	require.NoError(t, err)
	assert.Equal(t, `{"energy":12}`, string(got))

	raw, err := mr.Get("tq:" + KeyStats)
	require.NoError(t, err)
	assert.Equal(t, `{"energy":12}`, raw, "key should carry the prefix")
}

func TestRedisGatewayMissing(t *testing.T) {
	gw, _ := testRedis(t, "")
	_, err := gw.Get(context.Background(), KeyProfile)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisGatewayJSON(t *testing.T) {
	gw, _ := testRedis(t, "")
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, gw, KeyUnlocked, []string{"a", "b"}))
	var ids []string
	require.NoError(t, GetJSON(ctx, gw, KeyUnlocked, &ids))
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestNewRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	gw, err := NewRedis(context.Background(), RedisOptions{Address: addr, Prefix: "x:"})
	require.NoError(t, err)
	defer gw.Close()
	assert.NoError(t, gw.Ping(context.Background()))

	mr.Close()
	_, err = NewRedis(context.Background(), RedisOptions{Address: addr})
	assert.Error(t, err)
}

func TestRedisHistory(t *testing.T) {
	gw, _ := testRedis(t, "tq:")
	ctx := context.Background()

	for i, kind := range []string{"like", "reject", "skip"} {
		require.NoError(t, gw.RecordDecision(ctx, DecisionRecord{
			ID: kind, Kind: kind, ItemID: "1", Status: "accepted", CreatedAt: int64(i),
		}))
	}

	recs, err := gw.RecentDecisions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "skip", recs[0].Kind)
	assert.Equal(t, "reject", recs[1].Kind)

	none, err := gw.RecentDecisions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

var _ History = (*RedisGateway)(nil)
var _ History = (*DB)(nil)
var _ Gateway = (*RedisGateway)(nil)
var _ Gateway = (*DB)(nil)
