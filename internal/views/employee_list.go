package views

import (
	"context"
	"errors"
	"sync"

	"github.com/mueblesstgo-roster/internal/models"
)

// ErrLoadInProgress is returned by Activate while a fetch is pending
var ErrLoadInProgress = errors.New("employee list is already loading")

// EmployeeSource produces the roster asynchronously. The returned channel
// delivers exactly one result.
type EmployeeSource interface {
	FetchEmployees(ctx context.Context) <-chan models.EmployeeResult
}

// LoadState is the employee list view state
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateFailed  LoadState = "failed"
)

// EmployeeListSnapshot is a point-in-time copy of the view state
type EmployeeListSnapshot struct {
	State     LoadState
	Employees []models.Employee
	Error     string
}

// EmployeeListView loads the roster on activation and holds it for rendering
type EmployeeListView struct {
	source EmployeeSource

	mu        sync.Mutex
	state     LoadState
	employees []models.Employee
	err       error
	cancel    context.CancelFunc
	done      chan struct{}
	torn      bool
}

// NewEmployeeListView creates an idle view
func NewEmployeeListView(source EmployeeSource) *EmployeeListView {
	done := make(chan struct{})
	close(done)
	return &EmployeeListView{
		source: source,
		state:  StateIdle,
		done:   done,
	}
}

// Activate starts loading the roster. It is valid from Idle, Loaded (refresh)
// and Failed (retry).
func (v *EmployeeListView) Activate(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.torn {
		return context.Canceled
	}
	if v.state == StateLoading {
		return ErrLoadInProgress
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	v.state = StateLoading
	v.err = nil
	v.cancel = cancel
	v.done = done

	results := v.source.FetchEmployees(fetchCtx)

	go func() {
		defer close(done)
		defer cancel()

		var (
			result models.EmployeeResult
			ok     bool
		)
		select {
		case result, ok = <-results:
			if !ok {
				result = models.EmployeeResult{Err: errors.New("employee source closed without a result")}
			}
		case <-fetchCtx.Done():
			result = models.EmployeeResult{Err: fetchCtx.Err()}
		}
		v.settle(done, result)
	}()

	return nil
}

// settle applies a result unless the view was torn down or re-activated
func (v *EmployeeListView) settle(done chan struct{}, result models.EmployeeResult) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.torn || v.done != done {
		return
	}

	if result.Err != nil {
		v.state = StateFailed
		v.err = result.Err
		return
	}

	employees := make([]models.Employee, len(result.Employees))
	copy(employees, result.Employees)
	v.employees = employees
	v.state = StateLoaded
}

// Done returns a channel closed when the current activation settles
func (v *EmployeeListView) Done() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done
}

// Teardown cancels any pending fetch. Results arriving afterwards are ignored.
func (v *EmployeeListView) Teardown() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.torn = true
	if v.cancel != nil {
		v.cancel()
	}
}

// Snapshot returns a copy of the current state
func (v *EmployeeListView) Snapshot() EmployeeListSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := EmployeeListSnapshot{State: v.state}
	if v.employees != nil {
		snap.Employees = make([]models.Employee, len(v.employees))
		copy(snap.Employees, v.employees)
	}
	if v.err != nil {
		snap.Error = v.err.Error()
	}
	return snap
}

// ReturnToMenu returns the menu path. Stored data is left as is.
func (v *EmployeeListView) ReturnToMenu() string {
	return MenuPath
}
