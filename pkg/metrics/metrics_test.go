package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveModelCall(t *testing.T) {
	before := testutil.ToFloat64(ModelCalls.WithLabelValues("page", ResultError))
	ObserveModelCall("page", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(ModelCalls.WithLabelValues("page", ResultError))

	assert.Equal(t, before+1, after)
}

func TestObserveBook(t *testing.T) {
	before := testutil.ToFloat64(BooksGenerated.WithLabelValues(ResultSuccess))
	ObserveBook(nil)
	assert.Equal(t, before+1, testutil.ToFloat64(BooksGenerated.WithLabelValues(ResultSuccess)))
}
