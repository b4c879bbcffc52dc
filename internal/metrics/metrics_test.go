package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()

	SubmissionsTotal.WithLabelValues("accepted").Inc()
	require.Equal(t, 1.0, testutil.ToFloat64(SubmissionsTotal.WithLabelValues("accepted")))

	n, err := testutil.GatherAndCount(Registry, "contact_submissions_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
