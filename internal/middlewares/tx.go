package middlewares

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TxMiddleware runs the handler inside a database transaction. The response
// is held back until the transaction ends: statuses below 400 commit, the rest
// roll back. A failed commit turns the response into a 500. Functions passed to
// AfterCommit run only once the commit succeeded.
func TxMiddleware(db *sqlx.DB, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				log.Errorw("failed to begin transaction", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					_ = tx.Rollback()
					panic(rec)
				}
			}()

			hooks := &commitHooks{}
			ctx := context.WithValue(setTxToContext(r.Context(), tx), commitHooksKey{}, hooks)

			bw := &bufferedWriter{header: http.Header{}, statusCode: http.StatusOK}
			next.ServeHTTP(bw, r.WithContext(ctx))

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					log.Errorw("failed to rollback transaction", "error", err)
				}
				bw.flush(w)
				return
			}

			if err := tx.Commit(); err != nil {
				log.Errorw("failed to commit transaction", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			hooks.run()
			bw.flush(w)
		})
	}
}

type bufferedWriter struct {
	header     http.Header
	body       bytes.Buffer
	statusCode int
	written    bool
}

func (bw *bufferedWriter) Header() http.Header { return bw.header }

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.written {
		return
	}
	bw.written = true
	bw.statusCode = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.written = true
	return bw.body.Write(b)
}

func (bw *bufferedWriter) flush(w http.ResponseWriter) {
	for k, v := range bw.header {
		w.Header()[k] = v
	}
	w.WriteHeader(bw.statusCode)
	_, _ = w.Write(bw.body.Bytes())
}

type commitHooksKey struct{}

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

func (h *commitHooks) add(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *commitHooks) run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// AfterCommit defers fn until the request transaction commits; on rollback fn
// is dropped. Outside TxMiddleware fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks)
	if !ok {
		fn()
		return
	}
	hooks.add(fn)
}

type txKey struct{}

func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}
