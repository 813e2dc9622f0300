// Package storewrapper hands out the circulation.Store that feature tests run against.
package storewrapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper/postgreswrapper"
)

// GivenStore returns an empty in-memory store, or an empty PostgreSQL store
// when CIRCULATION_POSTGRES_TESTS=1.
func GivenStore(t testing.TB) circulation.Store {
	t.Helper()

	if postgreswrapper.Enabled() {
		return postgreswrapper.CreateWrapperWithTestConfig(t).GetStore()
	}

	store, err := memengine.NewStore()
	require.NoError(t, err, "error creating the in-memory store")

	return store
}
