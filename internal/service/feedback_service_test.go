package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studentools/studentools-api/internal/dto"
	"github.com/studentools/studentools-api/pkg/config"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

func TestFeedbackSubmitRecordsEntry(t *testing.T) {
	svc := NewFeedbackService(config.FeedbackConfig{}, nil, nil)

	resp, err := svc.Submit(context.Background(), dto.FeedbackRequest{
		Type:    "bug",
		Message: "export button renders twice",
		Email:   "student@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "feedback received", resp.Message)

	entries := svc.Recent(10)
	require.Len(t, entries, 1)
	require.Equal(t, "bug", entries[0].Type)
	require.Equal(t, "export button renders twice", entries[0].Message)
	require.NotEmpty(t, entries[0].ID)
}

func TestFeedbackSubmitDefaultsType(t *testing.T) {
	svc := NewFeedbackService(config.FeedbackConfig{}, nil, nil)

	_, err := svc.Submit(context.Background(), dto.FeedbackRequest{Message: "hello"})
	require.NoError(t, err)
	require.Equal(t, "general", svc.Recent(1)[0].Type)
}

func TestFeedbackSubmitValidation(t *testing.T) {
	svc := NewFeedbackService(config.FeedbackConfig{}, nil, nil)

	_, err := svc.Submit(context.Background(), dto.FeedbackRequest{})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Submit(context.Background(), dto.FeedbackRequest{Message: "hi", Email: "not-an-email"})
	require.Error(t, err)
}

func TestFeedbackLogIsBounded(t *testing.T) {
	svc := NewFeedbackService(config.FeedbackConfig{MaxEntries: 3}, nil, nil)

	for i := 0; i < 5; i++ {
		_, err := svc.Submit(context.Background(), dto.FeedbackRequest{Message: fmt.Sprintf("note %d", i)})
		require.NoError(t, err)
	}

	entries := svc.Recent(0)
	require.Len(t, entries, 3)
	// Newest first, oldest two dropped.
	require.Equal(t, "note 4", entries[0].Message)
	require.Equal(t, "note 2", entries[2].Message)
}
