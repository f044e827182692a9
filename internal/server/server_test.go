package server_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"edufair/internal/domain"
	"edufair/internal/server"
	"edufair/internal/store"
	"edufair/internal/ussd"
)

func newServer(t *testing.T) (*server.Server, domain.RegistrationStore) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := ussd.New(ussd.Config{}, st, nil, zap.NewNop())
	return server.New(svc, st, zap.NewNop()), st
}

func atHop(t *testing.T, h http.Handler, session, text string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	form := url.Values{"sessionId": {session}, "phoneNumber": {"+254700000001"}, "text": {text}}
	req := httptest.NewRequest(http.MethodPost, "/ussd/africastalking", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, rec.Body.String()
}

func TestAfricasTalkingRegistration(t *testing.T) {
	srv, st := newServer(t)

	rec, body := atHop(t, srv, "at-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(body, "CON Welcome to"), body)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))

	_, body = atHop(t, srv, "at-1", "1")
	assert.True(t, strings.HasPrefix(body, "CON "), body)
	_, body = atHop(t, srv, "at-1", "1*Amina Yusuf")
	assert.True(t, strings.HasPrefix(body, "CON "), body)
	_, body = atHop(t, srv, "at-1", "1*Amina Yusuf*1")
	assert.Contains(t, body, "Amina Yusuf")
	_, body = atHop(t, srv, "at-1", "1*Amina Yusuf*1*1")
	assert.True(t, strings.HasPrefix(body, "END Registration Successful!"), body)

	regs, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Amina Yusuf", regs[0].FullName)
	assert.Equal(t, domain.RegistrationStudent, regs[0].Type)
}

func TestAfricasTalkingMissingFields(t *testing.T) {
	srv, _ := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/ussd/africastalking", strings.NewReader("text=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, server.SystemErrorText, rec.Body.String())
}

type panicky struct{}

func (panicky) Handle(context.Context, ussd.Request) ussd.Response { panic("boom") }

func TestAfricasTalkingRecoversPanic(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	srv := server.New(panicky{}, st, nil)

	_, body := atHop(t, srv, "p-1", "")
	assert.Equal(t, server.SystemErrorText, body)
}

func genericHop(t *testing.T, h http.Handler, body string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ussd/generic", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGenericWebhook(t *testing.T) {
	srv, _ := newServer(t)

	out := genericHop(t, srv, `{"session_id":"g-1","phone_number":"+254700000002","text":""}`)
	assert.Equal(t, true, out["continue_session"])
	assert.True(t, strings.HasPrefix(out["response"].(string), "CON "))

	out = genericHop(t, srv, `{"session_id":"g-1","phone_number":"+254700000002","text":"3"}`)
	assert.Equal(t, false, out["continue_session"])
	assert.True(t, strings.HasPrefix(out["response"].(string), "END "))

	out = genericHop(t, srv, `not json`)
	assert.Equal(t, false, out["continue_session"])
	assert.Equal(t, server.SystemErrorText, out["response"])
}

func seed(t *testing.T, st domain.RegistrationStore) {
	t.Helper()
	at := time.Date(2024, 9, 1, 10, 30, 0, 0, time.UTC)
	for i, r := range []domain.Registration{
		{ID: "KEF1", FullName: "Amina Yusuf", Phone: "+254700000001", Type: domain.RegistrationStudent, School: "Alpha", CreatedAt: at},
		{ID: "KEF2", FullName: "Omar Said", Phone: "+254700000002", Type: domain.RegistrationTeacher, School: "Alpha", CreatedAt: at.Add(time.Hour)},
	} {
		r.Status = "confirmed"
		require.NoError(t, st.Save(context.Background(), r), i)
	}
}

func TestStats(t *testing.T) {
	srv, st := newServer(t)
	seed(t, st)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Students)
	assert.Equal(t, 1, stats.Teachers)
	assert.Equal(t, 2, stats.Schools["Alpha"])
}

func TestExport(t *testing.T) {
	srv, st := newServer(t)
	seed(t, st)

	t.Run("csv", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations/export?format=csv", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "registrations.csv")

		records, err := csv.NewReader(rec.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "KEF2", records[1][0])
	})

	t.Run("json default", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations/export", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var regs []domain.Registration
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regs))
		assert.Len(t, regs, 2)
	})

	t.Run("unsupported", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations/export?format=xlsx", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRoutes(t *testing.T) {
	srv, _ := newServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ussd/generic", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(server.RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(server.RequestIDHeader))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, _ := newServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln, server.RunConfig{ShutdownTimeout: time.Second}, srv, zap.NewNop()) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	client.CloseIdleConnections()
}
