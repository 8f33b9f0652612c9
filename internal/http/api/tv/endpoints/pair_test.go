package endpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/argus/internal/http/middleware"
)

// A dead broker must surface as an error from the connect flow, not a panic
// in the device's request path.
func TestConnectScreenToBrokerUnreachable(t *testing.T) {
	middleware.SetBrokerURL("tcp://127.0.0.1:1")

	err := connectScreenToBroker("device-under-test")
	assert.Error(t, err)

	middleware.ClientMutex.RLock()
	_, registered := middleware.TvClients["device-under-test"]
	middleware.ClientMutex.RUnlock()
	assert.False(t, registered)
}
