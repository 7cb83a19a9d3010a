package engine

import (
	"context"
	"errors"
	"fmt"

	"turf/internal/catalog"
	"turf/internal/platform"
	"turf/internal/rng"
)

const (
	// QuizCost is the energy debit to start a quiz session.
	QuizCost = 2

	// QuizLength is how many questions one session draws from the bank.
	QuizLength = 5

	pointsPerCorrect = 22
	perfectBonus     = 40 // 5/5
	nearBonus        = 18 // 4/5
	quizCap          = 150
)

// QuizSession walks the user through QuizLength seeded picks, one answer per
// question. Abandoning a session mid-way forfeits the earned points along
// with the spent energy.
type QuizSession struct {
	svc   *Service
	picks []catalog.Question

	step     int
	correct  int
	earned   int
	answered bool
}

// StartQuiz debits energy and draws QuizLength distinct questions with the
// day + district seed, so everyone in a district answers the same set.
func (s *Service) StartQuiz(ctx context.Context, bank []catalog.Question) (*QuizSession, error) {
	if len(bank) < QuizLength {
		return nil, fmt.Errorf("quiz bank has %d questions, need %d", len(bank), QuizLength)
	}
	if err := s.SpendEnergy(ctx, QuizCost); err != nil {
		return nil, err
	}

	rnd := rng.New(DayStamp(s.now()) + "|quiz|" + s.districtOrNone())
	used := map[int]bool{}
	picks := make([]catalog.Question, 0, QuizLength)
	for len(picks) < QuizLength {
		idx := rnd.IntN(len(bank))
		if used[idx] {
			continue
		}
		used[idx] = true
		picks = append(picks, bank[idx])
	}
	return &QuizSession{svc: s, picks: picks}, nil
}

// Step reports the 1-based question number.
func (q *QuizSession) Step() int { return q.step + 1 }

// Len reports the session length.
func (q *QuizSession) Len() int { return len(q.picks) }

// Correct reports how many answers were right so far.
func (q *QuizSession) Correct() int { return q.correct }

// Current returns the question awaiting an answer.
func (q *QuizSession) Current() catalog.Question {
	return q.picks[q.step]
}

// Answer records the choice for the current question. Exactly one answer per
// question; a second call is rejected. Returns whether the choice was right
// and the index of the right option.
func (q *QuizSession) Answer(choice int) (bool, int, error) {
	if q.Done() {
		return false, 0, errors.New("quiz already finished")
	}
	if q.answered {
		return false, 0, errors.New("question already answered")
	}
	q.answered = true

	item := q.picks[q.step]
	ok := choice == item.Correct
	if ok {
		q.correct++
		q.earned += pointsPerCorrect
		q.svc.haptics.Pulse(platform.HapticSuccess)
	} else {
		q.svc.haptics.Pulse(platform.HapticError)
	}
	return ok, item.Correct, nil
}

// Next advances to the following question. Returns false once the session
// has no more questions and is ready to finish.
func (q *QuizSession) Next() bool {
	if !q.answered {
		return !q.Done()
	}
	q.step++
	q.answered = false
	return !q.Done()
}

// Done reports whether all questions have been consumed.
func (q *QuizSession) Done() bool { return q.step >= len(q.picks) }

// QuizResult is the finished session outcome.
type QuizResult struct {
	Correct int
	Points  int
}

// Finish pays the session out: per-correct points plus a perfect-run bonus,
// clamped into [0, 150], best tracked, awarded through the pipeline.
func (q *QuizSession) Finish(ctx context.Context) (*QuizResult, error) {
	if !q.Done() {
		return nil, errors.New("quiz still in progress")
	}

	bonus := 0
	switch q.correct {
	case QuizLength:
		bonus = perfectBonus
	case QuizLength - 1:
		bonus = nearBonus
	}
	total := clamp(q.earned+bonus, 0, quizCap)
	q.svc.rec.noteBest(ActivityQuiz, total)

	points, err := q.svc.Award(ctx, float64(total), "Cosmo quiz")
	if err != nil {
		return nil, fmt.Errorf("quiz payout: %w", err)
	}
	return &QuizResult{Correct: q.correct, Points: points}, nil
}
