package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// Entry datos mínimos para una entrada de auditoría; ID y CreatedAt los pone el recorder.
type Entry struct {
	Action      string
	Description string
	Entity      string
	EntityID    string
	UserID      string
	IPAddress   string
}

// Sink contrato mínimo que consumen los use cases (permite fakes en tests).
type Sink interface {
	Record(e Entry)
}

var _ Sink = (*Recorder)(nil)

// Recorder encola entradas de auditoría y las persiste en un worker propio.
// Es best-effort: cola llena o fallo de insert se registra en el log y se descarta;
// nunca bloquea ni propaga error al flujo que lo invoca. Se encola DESPUÉS de que
// la operación principal haya confirmado.
type Recorder struct {
	repo  repository.ActivityRepository
	log   *logger.Logger
	queue chan *entity.ActivityLogEntry

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRecorder construye el recorder y arranca su worker.
func NewRecorder(repo repository.ActivityRepository, log *logger.Logger, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = 256
	}
	r := &Recorder{
		repo:  repo,
		log:   log,
		queue: make(chan *entity.ActivityLogEntry, queueSize),
	}
	r.wg.Add(1)
	go r.worker()
	return r
}

// Record encola una entrada sin bloquear. Si la cola está llena o el recorder
// ya cerró, la entrada se pierde (con log).
func (r *Recorder) Record(e Entry) {
	entry := &entity.ActivityLogEntry{
		ID:          uuid.New().String(),
		Action:      e.Action,
		Description: e.Description,
		Entity:      e.Entity,
		EntityID:    e.EntityID,
		UserID:      e.UserID,
		IPAddress:   e.IPAddress,
		CreatedAt:   time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.log.Warn().Str("action", e.Action).Msg("recorder cerrado, entrada de auditoría descartada")
		return
	}
	select {
	case r.queue <- entry:
	default:
		r.log.Warn().Str("action", e.Action).Msg("cola de auditoría llena, entrada descartada")
	}
}

// Close drena la cola pendiente y detiene el worker. Idempotente no es necesario:
// se invoca una vez en el shutdown del proceso.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for entry := range r.queue {
		if err := r.repo.Create(entry); err != nil {
			// Fallo del sink: solo log, jamás al caller.
			r.log.Error().Err(err).
				Str("action", entry.Action).
				Str("entity", entry.Entity).
				Msg("persistir entrada de auditoría")
		}
	}
}
