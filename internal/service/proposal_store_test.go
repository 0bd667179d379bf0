package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryProposalStoreRoundTrip(t *testing.T) {
	store := NewMemoryProposalStore(time.Minute)
	proposal := sampleProposal()

	require.NoError(t, store.Save(context.Background(), proposal))

	got, ok, err := store.Get(context.Background(), proposal.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, proposal.Entries, got.Entries)
}

func TestMemoryProposalStoreMiss(t *testing.T) {
	store := NewMemoryProposalStore(time.Minute)

	_, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryProposalStoreExpiry(t *testing.T) {
	store := NewMemoryProposalStore(time.Millisecond)
	proposal := sampleProposal()

	require.NoError(t, store.Save(context.Background(), proposal))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.Get(context.Background(), proposal.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryProposalStoreDelete(t *testing.T) {
	store := NewMemoryProposalStore(time.Minute)
	proposal := sampleProposal()

	require.NoError(t, store.Save(context.Background(), proposal))
	require.NoError(t, store.Delete(context.Background(), proposal.ID))

	_, ok, err := store.Get(context.Background(), proposal.ID)
	require.NoError(t, err)
	require.False(t, ok)
}
