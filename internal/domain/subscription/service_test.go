package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/diveplanner/pkg/errors"
)

type stubRepo struct {
	rows map[string]Subscriber
	seq  int64
	err  error
}

func newStubRepo() *stubRepo {
	return &stubRepo{rows: map[string]Subscriber{}}
}

func (r *stubRepo) Create(_ context.Context, email, source string) (Subscriber, bool, error) {
	if r.err != nil {
		return Subscriber{}, false, r.err
	}
	if sub, ok := r.rows[email]; ok {
		return sub, false, nil
	}
	r.seq++
	sub := Subscriber{ID: r.seq, Email: email, Source: source, CreatedAt: time.Now()}
	r.rows[email] = sub
	return sub, true, nil
}

func (r *stubRepo) Delete(_ context.Context, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.rows[email]
	delete(r.rows, email)
	return ok, nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSubscribeIsIdempotent(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, Request{Email: "  Buzo@Example.com "})
	require.NoError(t, err)
	require.False(t, first.AlreadySubscribed)
	require.Equal(t, "buzo@example.com", first.Subscriber.Email)
	require.Equal(t, "popup", first.Subscriber.Source)

	second, err := svc.Subscribe(ctx, Request{Email: "buzo@example.com", Source: "footer"})
	require.NoError(t, err)
	require.True(t, second.AlreadySubscribed)
	require.Equal(t, first.Subscriber.ID, second.Subscriber.ID)
}

func TestNormalizeEmail(t *testing.T) {
	valid := map[string]string{
		"a@b.co":               "a@b.co",
		" Diver.One@Mail.ES ":  "diver.one@mail.es",
		"x+news@sub.domain.io": "x+news@sub.domain.io",
	}
	for in, want := range valid {
		got, err := normalizeEmail(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	invalid := []string{"", "   ", "no-at-sign", "a@b", "Buzo <buzo@example.com>", "a@@b.com"}
	for _, in := range invalid {
		_, err := normalizeEmail(in)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), in)
	}
}

func TestUnsubscribe(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, Request{Email: "a@b.co"})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, "A@B.co"))

	err = svc.Unsubscribe(ctx, "a@b.co")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestSubscribeStorageError(t *testing.T) {
	repo := newStubRepo()
	repo.err = errors.New("db down")
	_, err := newTestService(repo).Subscribe(context.Background(), Request{Email: "a@b.co"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}
