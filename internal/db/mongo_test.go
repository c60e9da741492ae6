package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMongo_BadURI(t *testing.T) {
	client, err := ConnectMongo("mongodb://bad:uri")
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestMongoKV_NilCollection(t *testing.T) {
	kv := &MongoKV{Collection: nil}
	ctx := context.Background()

	_, _, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNilCollection)
	assert.ErrorIs(t, kv.Set(ctx, "k", []byte("v")), ErrNilCollection)
	assert.ErrorIs(t, kv.Delete(ctx, "k"), ErrNilCollection)
	_, err = kv.Keys(ctx, "")
	assert.ErrorIs(t, err, ErrNilCollection)
}

// Integration test (requires running MongoDB)
func TestMongoKV_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "uri" {
		t.Skip("MONGO_URI not set or invalid, skipping integration test")
		return
	}
	client, err := ConnectMongo(uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
		return
	}
	defer client.Disconnect(context.Background())

	collection := client.Database("test_fleet").Collection("localstore")
	collection.Drop(context.Background())

	testKV(t, &MongoKV{Collection: collection})
}

// testKV exercises the KV contract shared by every backend.
func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "fleet:vehicles:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "fleet:vehicles:1", []byte(`[{"id":"1"}]`)))
	require.NoError(t, kv.Set(ctx, "fleet:vehicles:2", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "currentCompany", []byte(`{"id":"2"}`)))

	v, ok, err := kv.Get(ctx, "fleet:vehicles:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, string(v))

	require.NoError(t, kv.Set(ctx, "fleet:vehicles:1", []byte(`[]`)))
	v, _, err = kv.Get(ctx, "fleet:vehicles:1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))

	keys, err := kv.Keys(ctx, "fleet:")
	require.NoError(t, err)
	assert.Equal(t, []string{"fleet:vehicles:1", "fleet:vehicles:2"}, keys)

	require.NoError(t, kv.Delete(ctx, "fleet:vehicles:2"))
	require.NoError(t, kv.Delete(ctx, "missing"))
	_, ok, err = kv.Get(ctx, "fleet:vehicles:2")
	require.NoError(t, err)
	assert.False(t, ok)
}
