package services

import "testing"

func TestNotifyUnconnectedUser(t *testing.T) {
	hub := NewNotificationHub()

	if hub.IsOnline("u1") {
		t.Error("fresh hub must report users offline")
	}
	if err := hub.Notify("u1", Event{Type: EventFollow, ActorUsername: "karl"}); err == nil {
		t.Error("notifying an unconnected user must fail")
	}
}
