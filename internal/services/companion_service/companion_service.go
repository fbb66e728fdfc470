package services

import (
	"log/slog"
	"sync"
	"time"

	"fan_showcase/internal/domain/companion"
	"fan_showcase/internal/metrics"

	"github.com/patrickmn/go-cache"
)

// Layout is the initial geometry of a new widget.
type Layout struct {
	Left, Top     float64
	Width, Height float64
	Delay         time.Duration
}

// CompanionService держит виджеты посетителей в памяти; неактивные
// виджеты удаляются по истечении idleTTL.
type CompanionService struct {
	log     *slog.Logger
	layout  Layout
	idleTTL time.Duration

	mu      sync.Mutex
	widgets *cache.Cache
}

func NewCompanionService(log *slog.Logger, layout Layout, idleTTL time.Duration) *CompanionService {
	widgets := cache.New(idleTTL, idleTTL)
	widgets.OnEvicted(func(string, interface{}) {
		metrics.CompanionWidgets.Set(float64(widgets.ItemCount()))
	})

	return &CompanionService{
		log:     log,
		layout:  layout,
		idleTTL: idleTTL,
		widgets: widgets,
	}
}

func (s *CompanionService) State(visitorID string) companion.Snapshot {
	return s.widget(visitorID).Snapshot()
}

func (s *CompanionService) Click(visitorID string) companion.Snapshot {
	return s.widget(visitorID).Click()
}

func (s *CompanionService) StartDrag(visitorID string, x, y float64) companion.Snapshot {
	return s.widget(visitorID).StartDrag(x, y)
}

func (s *CompanionService) DragTo(visitorID string, x, y float64) companion.Snapshot {
	return s.widget(visitorID).DragTo(x, y)
}

func (s *CompanionService) EndDrag(visitorID string) companion.Snapshot {
	return s.widget(visitorID).EndDrag()
}

func (s *CompanionService) Resize(visitorID string, width, height float64) companion.Snapshot {
	return s.widget(visitorID).Resize(width, height)
}

// widget returns the visitor's widget, creating it on first use. Every
// access pushes the idle expiry forward.
func (s *CompanionService) widget(visitorID string) *companion.Widget {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.widgets.Get(visitorID); ok {
		w := v.(*companion.Widget)
		s.widgets.Set(visitorID, w, cache.DefaultExpiration)
		return w
	}

	w := companion.New(s.layout.Left, s.layout.Top, s.layout.Width, s.layout.Height, s.layout.Delay)
	s.widgets.Set(visitorID, w, cache.DefaultExpiration)
	metrics.CompanionWidgets.Set(float64(s.widgets.ItemCount()))

	s.log.Debug("companion created", slog.String("visitor_id", visitorID))

	return w
}
