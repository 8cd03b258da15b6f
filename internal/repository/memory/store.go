package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/correction"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

var errNoTransaction = errors.New("memory: lock requires a transaction")

type txKey struct{}

type txState struct {
	held map[string]*sync.Mutex
	keys []string
	undo []func()
}

type overrideKey struct {
	employeeID string
	month      string
}

type deviceKey struct {
	employeeID string
	ip         string
}

// Store keeps every table in process memory. Writes inside WithinTransaction
// are undone when the transaction function returns an error.
type Store struct {
	mu    sync.Mutex
	clock clock.Clock
	seq   int64

	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	corrections map[string]correction.CorrectionRequest
	order       map[string]int64
	overrides   map[overrideKey]summary.Override
	wifi        map[string]access.WifiIP
	devices     map[deviceKey]access.DeviceIP

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	unavailable error
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		clock:       clk,
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]attendance.Attendance),
		corrections: make(map[string]correction.CorrectionRequest),
		order:       make(map[string]int64),
		overrides:   make(map[overrideKey]summary.Override),
		wifi:        make(map[string]access.WifiIP),
		devices:     make(map[deviceKey]access.DeviceIP),
		locks:       make(map[string]*sync.Mutex),
	}
}

// SetUnavailable makes every operation fail with database.ErrStoreUnavailable
// until called again with nil.
func (s *Store) SetUnavailable(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = cause
}

// PutEmployee inserts or replaces a directory entry.
func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	s.employees[e.ID] = e
}

// check must be called with s.mu held.
func (s *Store) check(op string) error {
	if s.unavailable != nil {
		return database.Unavailable(op, s.unavailable)
	}
	return nil
}

// nextSeq must be called with s.mu held.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// onRollback must be called with s.mu held.
func (s *Store) onRollback(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok {
		tx.undo = append(tx.undo, undo)
	}
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	tx := &txState{held: make(map[string]*sync.Mutex)}
	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			s.rollback(tx)
			s.release(tx)
			panic(p)
		}
		if err != nil {
			s.rollback(tx)
		}
		s.release(tx)
	}()

	return fn(txCtx)
}

func (s *Store) rollback(tx *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (s *Store) release(tx *txState) {
	for i := len(tx.keys) - 1; i >= 0; i-- {
		tx.held[tx.keys[i]].Unlock()
	}
	tx.keys = nil
}

// lock takes the named key for the rest of the transaction in ctx.
func (s *Store) lock(ctx context.Context, key string) error {
	tx, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return errNoTransaction
	}
	if _, held := tx.held[key]; held {
		return nil
	}

	s.locksMu.Lock()
	m, exists := s.locks[key]
	if !exists {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	tx.held[key] = m
	tx.keys = append(tx.keys, key)
	return nil
}

// NewTransactor returns the store as a database.Transactor.
func NewTransactor(s *Store) database.Transactor {
	return s
}
