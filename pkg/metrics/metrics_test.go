package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("sitehub", reg)

	m.ChatMessagesSent.WithLabelValues("client").Inc()
	m.ChatMessagesSent.WithLabelValues("client").Inc()
	m.SessionsActive.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChatMessagesSent.WithLabelValues("client")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsActive))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["sitehub_chat_messages_sent_total"])
	assert.True(t, names["sitehub_sessions_active"])
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("sitehub", prometheus.NewRegistry())
		New("sitehub", prometheus.NewRegistry())
	})
}
