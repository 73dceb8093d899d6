package middleware

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/httpapi"
)

// ProvidePool binds the database pool to every request.
func ProvidePool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

// WithTransaction runs the handler inside a transaction. The response is held back
// until the outcome is known: error statuses roll back, anything else commits, and a
// failed commit replaces the response with a 500. Commit hooks run after the commit.
func WithTransaction() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pool, err := composables.UsePool(r.Context())
			if err != nil {
				httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "DB_UNAVAILABLE", err.Error())
				return
			}
			tx, err := pool.Begin(r.Context())
			if err != nil {
				httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "DB_UNAVAILABLE", err.Error())
				return
			}
			defer func() {
				if err := tx.Rollback(r.Context()); err != nil {
					if errors.Is(err, pgx.ErrTxClosed) {
						return
					}
					composables.UseLogger(r.Context()).WithError(err).Error("failed to rollback transaction")
				}
			}()

			ctx, hooks := composables.WithCommitHooks(composables.WithTx(r.Context(), tx))
			r = r.WithContext(ctx)
			buf := newBufferedResponse()
			next.ServeHTTP(buf, r)

			if buf.statusCode() >= http.StatusBadRequest {
				buf.flush(w)
				return
			}
			if err := tx.Commit(r.Context()); err != nil {
				composables.UseLogger(r.Context()).WithError(err).Error("failed to commit transaction")
				httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "TX_COMMIT_FAILED", "failed to commit transaction")
				return
			}
			hooks.Run()
			buf.flush(w)
		})
	}
}

// bufferedResponse records a handler's response so it can be discarded.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: http.Header{}}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	for k, v := range b.header {
		w.Header()[k] = v
	}
	w.WriteHeader(b.statusCode())
	_, _ = w.Write(b.body.Bytes())
}
