package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tratlus/internal/calendar"
	"github.com/alexanderramin/tratlus/internal/db"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/alexanderramin/tratlus/internal/timeline"
)

type dayService struct {
	days     repository.DayRepo
	uow      db.UnitOfWork
	geom     timeline.Geometry
	observer UseCaseObserver
}

func NewDayService(days repository.DayRepo, uow db.UnitOfWork, geom timeline.Geometry, observers ...UseCaseObserver) DayService {
	return &dayService{
		days:     days,
		uow:      uow,
		geom:     geom,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dayService) Get(ctx context.Context, key calendar.DateKey) ([]domain.ActivityBlock, error) {
	return s.days.Get(ctx, key.String())
}

// withDay runs fn against the day's timeline and stores the blocks when fn
// reports a change.
func (s *dayService) withDay(ctx context.Context, key calendar.DateKey, fn func(d *timeline.DayTimeline) (changed bool, err error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDays := repository.NewSQLiteDayRepo(tx)
		blocks, err := txDays.Get(ctx, key.String())
		if err != nil {
			return err
		}
		d := timeline.New(s.geom, blocks)
		changed, err := fn(d)
		if err != nil || !changed {
			return err
		}
		return txDays.Replace(ctx, key.String(), d.Blocks())
	})
}

func (s *dayService) Place(ctx context.Context, key calendar.DateKey, category domain.Category, startMin int) (block domain.ActivityBlock, placed bool, err error) {
	fields := map[string]any{"date": key.String(), "category": string(category), "start_min": startMin}
	defer observe(ctx, s.observer, "day-place", time.Now().UTC(), fields, &err)

	err = s.withDay(ctx, key, func(d *timeline.DayTimeline) (bool, error) {
		sess, err := d.BeginPaletteDrag(category)
		if err != nil {
			return false, err
		}
		if _, err := d.DragOver(sess, s.geom.BlockTop(startMin)); err != nil {
			d.EndDrag(sess)
			return false, err
		}
		placed, err = d.Drop(sess)
		if err != nil || !placed {
			return false, err
		}
		block, err = d.Block(d.Len() - 1)
		return true, err
	})
	fields["placed"] = placed
	return block, placed, err
}

func (s *dayService) Move(ctx context.Context, key calendar.DateKey, index, startMin int) (moved bool, err error) {
	fields := map[string]any{"date": key.String(), "index": index, "start_min": startMin}
	defer observe(ctx, s.observer, "day-move", time.Now().UTC(), fields, &err)

	err = s.withDay(ctx, key, func(d *timeline.DayTimeline) (bool, error) {
		sess, err := d.BeginBlockDrag(index)
		if err != nil {
			return false, err
		}
		if _, err := d.DragOver(sess, s.geom.BlockTop(startMin)); err != nil {
			d.EndDrag(sess)
			return false, err
		}
		moved, err = d.Drop(sess)
		return moved, err
	})
	fields["moved"] = moved
	return moved, err
}

func (s *dayService) Resize(ctx context.Context, key calendar.DateKey, index int, edge timeline.ResizeEdge, deltaMin int) (block domain.ActivityBlock, err error) {
	fields := map[string]any{"date": key.String(), "index": index, "edge": edge.String(), "delta_min": deltaMin}
	defer observe(ctx, s.observer, "day-resize", time.Now().UTC(), fields, &err)

	err = s.withDay(ctx, key, func(d *timeline.DayTimeline) (bool, error) {
		rs, err := d.BeginResize(index, edge, 0)
		if err != nil {
			return false, err
		}
		defer rs.Release()
		b, ok := rs.Move(timeline.MinutesToPixels(deltaMin, s.geom.PxPerHour))
		if !ok {
			return false, timeline.ErrStaleGesture
		}
		block = b
		return true, nil
	})
	return block, err
}

func (s *dayService) Edit(ctx context.Context, key calendar.DateKey, index int, form timeline.EditForm) (block domain.ActivityBlock, err error) {
	fields := map[string]any{"date": key.String(), "index": index}
	defer observe(ctx, s.observer, "day-edit", time.Now().UTC(), fields, &err)

	err = s.withDay(ctx, key, func(d *timeline.DayTimeline) (bool, error) {
		b, err := d.Save(index, form)
		if err != nil {
			return false, err
		}
		block = b
		return true, nil
	})
	return block, err
}

func (s *dayService) Delete(ctx context.Context, key calendar.DateKey, index int) (err error) {
	fields := map[string]any{"date": key.String(), "index": index}
	defer observe(ctx, s.observer, "day-delete", time.Now().UTC(), fields, &err)

	return s.withDay(ctx, key, func(d *timeline.DayTimeline) (bool, error) {
		if err := d.Delete(index); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *dayService) Index(ctx context.Context) (*calendar.Index, error) {
	all, err := s.days.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := calendar.NewIndex()
	for k, blocks := range all {
		key, err := calendar.ParseDateKey(k)
		if err != nil {
			return nil, fmt.Errorf("stored day %q: %w", k, err)
		}
		idx.Set(key, blocks)
	}
	return idx, nil
}

func (s *dayService) Month(ctx context.Context, year int, month time.Month, today time.Time) (calendar.MonthGrid, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return calendar.MonthGrid{}, err
	}
	return calendar.Month(year, month, idx, today), nil
}
