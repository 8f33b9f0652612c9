package middleware

import (
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

var (
	TvClients   = make(map[string]mqtt.Client)
	ClientMutex sync.RWMutex
	mqttClient  mqtt.Client
	brokerURL   = "tcp://0.0.0.0:1883" // Default MQTT broker URL
)

// MQTT message handler for TV devices
var messagePubHandler mqtt.MessageHandler = func(client mqtt.Client, msg mqtt.Message) {
	log.Debug().Str("topic", msg.Topic()).Bytes("payload", msg.Payload()).Msg("Received MQTT message")
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("Connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// Initialize MQTT client
func CreateMQTTClient(clientName string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetDefaultPublishHandler(messagePubHandler)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	log.Info().Str("client", clientName).Msg("MQTT client initialized")
	return mqttClient, nil
}

// SetBrokerURL allows configuration of the MQTT broker URL
func SetBrokerURL(url string) {
	brokerURL = url
}

// SendMessageToScreen sends a message to a specific TV screen via MQTT
func SendMessageToScreen(deviceID string, message []byte) error {
	ClientMutex.RLock()
	client, exists := TvClients[deviceID]
	ClientMutex.RUnlock()
	if !exists {
		return fmt.Errorf("TV device %s not connected", deviceID)
	}
	topic := fmt.Sprintf("screens/%s/commands", deviceID)
	token := client.Publish(topic, 1, false, message)
	token.Wait()

	if token.Error() != nil {
		return fmt.Errorf("failed to send message to TV device %s: %v", deviceID, token.Error())
	}

	log.Debug().Str("deviceID", deviceID).Msg("Message sent to TV device via MQTT")
	return nil
}

// RefreshScreen tells a device to repoll its playlist immediately. Devices
// that are offline simply pick up the change on their next poll, so a missing
// client is not an error.
func RefreshScreen(deviceID *string) {
	if deviceID == nil {
		return
	}
	if err := SendMessageToScreen(*deviceID, []byte(`{"command":"refresh"}`)); err != nil {
		log.Debug().Str("deviceID", *deviceID).Msg("Refresh skipped - device not connected")
	}
}

// SendMessageToAllScreens sends a message to all connected TV screens
func SendMessageToAllScreens(message []byte) error {
	ClientMutex.RLock()
	defer ClientMutex.RUnlock()

	var errors []string
	for deviceID, client := range TvClients {
		topic := fmt.Sprintf("screens/%s/commands", deviceID)
		token := client.Publish(topic, 1, false, message)
		token.Wait()

		if token.Error() != nil {
			errors = append(errors, fmt.Sprintf("device %s: %v", deviceID, token.Error()))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to send messages to some devices: %v", errors)
	}

	log.Debug().Int("devices", len(TvClients)).Msg("Message sent to all connected TV devices")
	return nil
}

// DisconnectTV disconnects a specific TV device
func DisconnectTV(deviceID string) {
	ClientMutex.Lock()
	defer ClientMutex.Unlock()

	if client, exists := TvClients[deviceID]; exists {
		client.Disconnect(250)
		delete(TvClients, deviceID)
		log.Info().Str("deviceID", deviceID).Msg("TV device disconnected from MQTT")
	}
}

// GetConnectedTVs returns a list of connected TV device IDs
func GetConnectedTVs() []string {
	ClientMutex.RLock()
	defer ClientMutex.RUnlock()

	devices := make([]string, 0, len(TvClients))
	for deviceID := range TvClients {
		devices = append(devices, deviceID)
	}
	return devices
}

// CleanupMQTT disconnects all clients and the main MQTT client
func CleanupMQTT() {
	ClientMutex.Lock()
	defer ClientMutex.Unlock()

	for deviceID, client := range TvClients {
		client.Disconnect(250)
		log.Info().Str("deviceID", deviceID).Msg("Disconnected TV device")
	}
	TvClients = make(map[string]mqtt.Client)

	if mqttClient != nil {
		mqttClient.Disconnect(250)
		log.Info().Msg("Main MQTT client disconnected")
	}
}
