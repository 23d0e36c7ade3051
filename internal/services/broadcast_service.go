package services

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"contestbot/internal/config"
)

// Sender delivers one message to one chat. Implementations wrap the
// Telegram client; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, chatId int64, text string) error
}

type BroadcastResult struct {
	Total  int
	Sent   int
	Failed int
}

// ProgressFunc is called periodically with the number of processed
// recipients. It runs on the dispatch goroutine's callers; keep it fast.
type ProgressFunc func(processed, total int)

type BroadcastService struct {
	users   UserStore
	stats   *StatsService
	workers int
	limiter *rate.Limiter
	// progressEvery recipients between ProgressFunc invocations.
	progressEvery int
}

func NewBroadcastService(users UserStore, stats *StatsService) *BroadcastService {
	return &BroadcastService{
		users:         users,
		stats:         stats,
		workers:       config.BROADCAST_WORKERS,
		limiter:       rate.NewLimiter(rate.Limit(config.BROADCAST_RATE_PER_SECOND), 1),
		progressEvery: 50,
	}
}

// SendToAll fans the text out to every registered chat. Individual
// delivery failures are counted and skipped; cancelling ctx stops
// dispatching new sends while in-flight ones finish.
func (s *BroadcastService) SendToAll(ctx context.Context, sender Sender, text string, progress ProgressFunc) (*BroadcastResult, error) {
	chatIds, err := s.users.RegisteredChatIds(ctx)
	if err != nil {
		return nil, err
	}
	result := s.fanOut(ctx, sender, chatIds, text, progress)
	if s.stats != nil {
		s.stats.BumpMessagesSent(ctx, result.Sent)
	}
	return result, nil
}

func (s *BroadcastService) fanOut(ctx context.Context, sender Sender, chatIds []int64, text string, progress ProgressFunc) *BroadcastResult {
	total := len(chatIds)
	var sent, failed, processed atomic.Int64

	jobs := make(chan int64)
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chatId := range jobs {
				if err := s.limiter.Wait(ctx); err != nil {
					failed.Add(1)
					processed.Add(1)
					continue
				}
				if err := sender.Send(ctx, chatId, text); err != nil {
					log.Error("Failed to deliver broadcast to ", chatId, ": ", err)
					failed.Add(1)
				} else {
					sent.Add(1)
				}
				done := processed.Add(1)
				if progress != nil && int(done)%s.progressEvery == 0 {
					progress(int(done), total)
				}
			}
		}()
	}

dispatch:
	for _, chatId := range chatIds {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- chatId:
		}
	}
	close(jobs)
	wg.Wait()

	return &BroadcastResult{
		Total:  total,
		Sent:   int(sent.Load()),
		Failed: int(failed.Load()),
	}
}

// SendTo delivers a single message through the shared rate limiter.
func (s *BroadcastService) SendTo(ctx context.Context, sender Sender, chatId int64, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := sender.Send(ctx, chatId, text); err != nil {
		return err
	}
	if s.stats != nil {
		s.stats.BumpMessagesSent(ctx, 1)
	}
	return nil
}
