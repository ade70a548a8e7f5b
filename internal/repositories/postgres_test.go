package repositories

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"clipgen/internal/pkg/errors"
)

func TestMapGetErrorNoRows(t *testing.T) {
	err := mapGetError("job_1", pgx.ErrNoRows)
	assert.True(t, errors.IsNotFound(err))
}

func TestMapGetErrorWrappedNoRows(t *testing.T) {
	err := mapGetError("job_1", fmt.Errorf("query: %w", pgx.ErrNoRows))
	assert.True(t, errors.IsNotFound(err))
}

func TestMapGetErrorInfrastructure(t *testing.T) {
	err := mapGetError("job_1", fmt.Errorf("connection refused"))
	assert.False(t, errors.IsNotFound(err))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
	assert.Contains(t, err.Error(), "connection refused")
}
