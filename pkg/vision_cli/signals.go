// pkg/vision_cli/signals.go
//
// Graceful shutdown on Ctrl-C and SIGTERM. A first signal cancels the
// context and runs registered cleanups in LIFO order; a second signal
// forces exit. Long operations like venv creation register cleanups so
// partial directories do not survive an abort.

package vision_cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CleanupFunc performs one cleanup step during shutdown.
type CleanupFunc func() error

// SignalHandler manages graceful shutdown on signals.
type SignalHandler struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	cleanupFuncs []CleanupFunc

	sigChan chan os.Signal
}

// NewSignalHandler starts listening for SIGINT and SIGTERM.
func NewSignalHandler(ctx context.Context) *SignalHandler {
	ctx, cancel := context.WithCancel(ctx)

	handler := &SignalHandler{
		ctx:     ctx,
		cancel:  cancel,
		sigChan: make(chan os.Signal, 2),
	}

	signal.Notify(handler.sigChan, os.Interrupt, syscall.SIGTERM)
	go handler.handleSignals()

	return handler
}

// RegisterCleanup adds a cleanup step. Steps run in reverse
// registration order on shutdown.
func (h *SignalHandler) RegisterCleanup(cleanup CleanupFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleanupFuncs = append(h.cleanupFuncs, cleanup)
}

// Context returns the cancellable context. Operations should watch it
// to detect cancellation.
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

func (h *SignalHandler) handleSignals() {
	logger := otelzap.Ctx(h.ctx)

	sig, ok := <-h.sigChan
	if !ok {
		return
	}
	logger.Info("Received signal, initiating cleanup", zap.String("signal", sig.String()))
	fmt.Fprintf(os.Stderr, "\n\n⚠️  Received %v, cleaning up...\n", sig)

	h.cancel()

	go func() {
		if _, ok := <-h.sigChan; ok {
			fmt.Fprintln(os.Stderr, "\n⚠️  Received second interrupt, forcing exit!")
			os.Exit(1)
		}
	}()

	if err := h.runCleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "Cleanup completed with errors: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "✓ Cleanup complete")
	os.Exit(130)
}

// runCleanup executes all cleanup functions, bounded to five seconds.
func (h *SignalHandler) runCleanup() error {
	logger := otelzap.Ctx(h.ctx)

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		h.mu.Lock()
		funcs := make([]CleanupFunc, len(h.cleanupFuncs))
		copy(funcs, h.cleanupFuncs)
		h.mu.Unlock()

		var lastErr error
		for i := len(funcs) - 1; i >= 0; i-- {
			if err := funcs[i](); err != nil {
				logger.Warn("Cleanup function failed", zap.Int("index", i), zap.Error(err))
				lastErr = err
			}
		}
		done <- lastErr
	}()

	select {
	case err := <-done:
		return err
	case <-cleanupCtx.Done():
		logger.Error("Cleanup timed out after 5 seconds")
		return fmt.Errorf("cleanup timed out")
	}
}

// Stop detaches the handler. Call at the end of a successful run so a
// late Ctrl-C does not trigger stale cleanups.
func (h *SignalHandler) Stop() {
	signal.Stop(h.sigChan)
	close(h.sigChan)
}
