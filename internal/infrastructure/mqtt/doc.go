// Package mqtt mirrors sensor readings onto an MQTT broker.
//
// The mirror is publish-only. This package manages:
//   - Connection to the broker with auto-reconnect after the first connect
//   - Retained reading messages, one topic per series
//   - Last Will and Testament (LWT) on the status topic for offline detection
//   - Online/offline status republished on every (re)connect
//
// # Topics
//
//	roomsense/temperature   {"sensor":"hdc1000","value":21.5,"unit":"C","timestamp":"..."}
//	roomsense/humidity      {"sensor":"hdc1000","value":45,"unit":"%RH","timestamp":"..."}
//	roomsense/status        {"status":"online","client_id":"roomsense",...}
//
// The prefix is configurable via mqtt.topic_prefix.
//
// # Security Considerations
//
//   - Enable TLS (mqtt.broker.tls) when the broker is not on the same host
//   - Credentials should be supplied via ROOMSENSE_MQTT_USERNAME/PASSWORD
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	pub := mqtt.NewReadingPublisher(client, client.Topics(), byte(cfg.MQTT.QoS), "hdc1000")
//	err = pub.Publish(ctx, 21.5, 45.0, time.Now())
package mqtt
