package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/bnema/streams-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

type StreamService struct {
	repo  ports.StreamRepository
	clock ports.Clock
	log   logrus.FieldLogger
}

func NewStreamService(repo ports.StreamRepository, clock ports.Clock, log logrus.FieldLogger) *StreamService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &StreamService{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

func (s *StreamService) Clock() ports.Clock {
	return s.clock
}

func (s *StreamService) GetView(ctx context.Context, id domain.StreamID) (StreamView, error) {
	stream, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return StreamView{}, fmt.Errorf("get stream by id: %w", err)
	}

	return ViewAt(stream, s.clock.Now()), nil
}

func (s *StreamService) ListViews(ctx context.Context) ([]StreamView, error) {
	streams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}

	now := s.clock.Now()
	views := make([]StreamView, 0, len(streams))
	for _, stream := range streams {
		views = append(views, ViewAt(stream, now))
	}

	return views, nil
}

func (s *StreamService) ListStreams(ctx context.Context) ([]domain.Stream, error) {
	streams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}

	return streams, nil
}

func (s *StreamService) AddStream(ctx context.Context, cmd AddStreamCommand) (domain.Stream, error) {
	status, err := domain.ParseStatus(cmd.Status)
	if err != nil {
		return domain.Stream{}, err
	}

	stream := domain.Stream{
		ID:              domain.StreamID(strings.TrimSpace(string(cmd.ID))),
		Sender:          strings.TrimSpace(cmd.Sender),
		Recipient:       strings.TrimSpace(cmd.Recipient),
		TokenSymbol:     strings.TrimSpace(cmd.TokenSymbol),
		TotalAmount:     cmd.TotalAmount,
		WithdrawnAmount: cmd.WithdrawnAmount,
		StartTime:       cmd.StartTime,
		EndTime:         cmd.EndTime,
		Status:          status,
	}
	if err := stream.Validate(); err != nil {
		return domain.Stream{}, fmt.Errorf("validate stream: %w", err)
	}

	_, err = s.repo.GetByID(ctx, stream.ID)
	switch {
	case err == nil:
		return domain.Stream{}, fmt.Errorf("%w: %s", domain.ErrStreamExists, stream.ID)
	case !errors.Is(err, domain.ErrStreamNotFound):
		return domain.Stream{}, fmt.Errorf("get stream by id: %w", err)
	}

	if err := s.repo.Save(ctx, stream); err != nil {
		return domain.Stream{}, fmt.Errorf("save stream: %w", err)
	}

	return stream, nil
}

// ImportStreams upserts externally produced records and returns how many
// were stored. Every record is validated before the first write, so an
// invalid feed stores nothing.
func (s *StreamService) ImportStreams(ctx context.Context, streams []domain.Stream) (int, error) {
	var errs []error
	for _, stream := range streams {
		if err := stream.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("validate stream %s: %w", stream.ID, err))
		}
	}
	if len(errs) > 0 {
		return 0, errors.Join(errs...)
	}

	for i, stream := range streams {
		if err := s.repo.Save(ctx, stream); err != nil {
			return i, fmt.Errorf("save stream %s: %w", stream.ID, err)
		}
	}

	s.log.WithField("count", len(streams)).Info("imported streams")

	return len(streams), nil
}

func (s *StreamService) RecordWithdrawal(ctx context.Context, cmd RecordWithdrawalCommand) error {
	stream, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return fmt.Errorf("get stream by id: %w", err)
	}

	if cmd.WithdrawnAmount.IsNegative() {
		return domain.ErrNegativeAmount
	}
	if cmd.WithdrawnAmount.LessThan(stream.WithdrawnAmount) {
		return fmt.Errorf("%w: %s < %s", domain.ErrWithdrawnDecreased, cmd.WithdrawnAmount, stream.WithdrawnAmount)
	}
	if cmd.WithdrawnAmount.GreaterThan(stream.TotalAmount) {
		return fmt.Errorf("%w: %s > %s", domain.ErrWithdrawnExceedsTotal, cmd.WithdrawnAmount, stream.TotalAmount)
	}

	stream.WithdrawnAmount = cmd.WithdrawnAmount

	if err := s.repo.Save(ctx, stream); err != nil {
		return fmt.Errorf("save stream withdrawal: %w", err)
	}

	return nil
}

func (s *StreamService) SetStatus(ctx context.Context, cmd SetStatusCommand) error {
	status, err := domain.ParseStatus(cmd.Status)
	if err != nil {
		return err
	}

	stream, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return fmt.Errorf("get stream by id: %w", err)
	}

	stream.Status = status

	if err := s.repo.Save(ctx, stream); err != nil {
		return fmt.Errorf("save stream status: %w", err)
	}

	return nil
}

func (s *StreamService) RemoveStream(ctx context.Context, id domain.StreamID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete stream: %w", err)
	}

	return nil
}
