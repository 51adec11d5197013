package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123:test"

func newTestClient(t *testing.T, deleteBody string, form *map[string]string) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bot"+testToken+"/getMe", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"files","username":"files_bot"}}`))
	})
	mux.HandleFunc("/bot"+testToken+"/deleteMessage", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if form != nil {
			*form = map[string]string{
				"chat_id":    r.PostForm.Get("chat_id"),
				"message_id": r.PostForm.Get("message_id"),
			}
		}
		_, _ = w.Write([]byte(deleteBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(testToken, srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	return c
}

func TestDeleteMessageAcknowledged(t *testing.T) {
	var form map[string]string
	c := newTestClient(t, `{"ok":true,"result":true}`, &form)

	ok, err := c.DeleteMessage(context.Background(), "-100123", 55)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "-100123", form["chat_id"])
	assert.Equal(t, "55", form["message_id"])
}

func TestDeleteMessageChannelUsername(t *testing.T) {
	var form map[string]string
	c := newTestClient(t, `{"ok":true,"result":true}`, &form)

	ok, err := c.DeleteMessage(context.Background(), "@files", 9)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "@files", form["chat_id"])
}

func TestDeleteMessageNotAcknowledged(t *testing.T) {
	for _, body := range []string{
		`{"ok":true,"result":false}`,
		`{"ok":true}`,
		`{"ok":true,"result":{"deleted":true}}`,
	} {
		c := newTestClient(t, body, nil)
		ok, err := c.DeleteMessage(context.Background(), "-100123", 55)
		require.NoError(t, err, body)
		assert.False(t, ok, body)
	}
}

func TestDeleteMessageErrors(t *testing.T) {
	c := newTestClient(t, `{"ok":false,"error_code":400,"description":"Bad Request: message to delete not found"}`, nil)
	ok, err := c.DeleteMessage(context.Background(), "-100123", 55)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "message to delete not found")

	c = newTestClient(t, `not json`, nil)
	_, err = c.DeleteMessage(context.Background(), "-100123", 55)
	assert.Error(t, err)

	_, err = c.DeleteMessage(context.Background(), "channel", 55)
	assert.Error(t, err)

	_, err = c.DeleteMessage(context.Background(), "-100123", 0)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.DeleteMessage(ctx, "-100123", 55)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New("", "", nil)
	assert.Error(t, err)
}
