package audit_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/audit"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// fakeActivityRepo sink en memoria, seguro para el worker concurrente.
type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*entity.ActivityLogEntry
	err     error
}

func (r *fakeActivityRepo) Create(entry *entity.ActivityLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeActivityRepo) ListRecent(limit int) ([]*entity.ActivityLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ActivityLogEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *fakeActivityRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close drena la cola: toda entrada encolada antes del cierre termina persistida.
func TestRecorder_CloseDrenaLaCola(t *testing.T) {
	repo := &fakeActivityRepo{}
	rec := audit.NewRecorder(repo, logger.Nop(), 64)

	for i := 0; i < 10; i++ {
		rec.Record(audit.Entry{
			Action:   "Create Product",
			Entity:   "product",
			EntityID: "prod-1",
			UserID:   "user-1",
		})
	}
	rec.Close()

	assert.Equal(t, 10, repo.count())
}

// El recorder completa ID y CreatedAt de cada entrada.
func TestRecorder_CompletaIDYFecha(t *testing.T) {
	repo := &fakeActivityRepo{}
	rec := audit.NewRecorder(repo, logger.Nop(), 8)

	rec.Record(audit.Entry{Action: "User Login", Entity: "user", UserID: "user-1"})
	rec.Close()

	entries, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.Equal(t, "User Login", entries[0].Action)
}

// Un fallo del repositorio jamás se propaga: Record nunca bloquea ni falla.
func TestRecorder_FalloDelRepoNoPropaga(t *testing.T) {
	repo := &fakeActivityRepo{err: errors.New("bd caída")}
	rec := audit.NewRecorder(repo, logger.Nop(), 8)

	// No hay error que observar: la llamada solo debe retornar.
	rec.Record(audit.Entry{Action: "Create Sale", Entity: "sale"})
	rec.Close()

	assert.Equal(t, 0, repo.count())
}

// Después de Close, las entradas nuevas se descartan sin pánico.
func TestRecorder_RecordDespuesDeClose(t *testing.T) {
	repo := &fakeActivityRepo{}
	rec := audit.NewRecorder(repo, logger.Nop(), 8)
	rec.Close()

	assert.NotPanics(t, func() {
		rec.Record(audit.Entry{Action: "Delete Product", Entity: "product"})
	})
	assert.Equal(t, 0, repo.count())
}
