// Package stream is the optional push fast path layered over the message
// log. Polling stays the authoritative delivery contract; the hub only
// shortens the window between an append and a connected client seeing it.
package stream

import (
	"context"

	"github.com/huddlechat/huddle-server/internal/core"
)

type commandKind int

const (
	commandSubscribe commandKind = iota
	commandUnsubscribe
	commandPublish
	commandCloseRoom
)

type command struct {
	kind commandKind
	sub  *Subscriber
	room string
	msg  core.Message
}

// Hub fans appended messages out to the subscribers of each room. All
// state is owned by the Run loop; the exported methods only enqueue
// commands and never block.
type Hub struct {
	commands chan command
}

// NewHub creates a hub. Call Run before subscribing.
func NewHub() *Hub {
	return &Hub{commands: make(chan command, 64)}
}

// Run processes hub commands until the context is cancelled, then closes
// every remaining subscriber channel.
func (h *Hub) Run(ctx context.Context) {
	rooms := make(map[string]map[*Subscriber]struct{})

	for {
		select {
		case cmd := <-h.commands:
			h.handle(rooms, cmd)
		case <-ctx.Done():
			for _, subs := range rooms {
				for sub := range subs {
					close(sub.Events)
				}
			}
			return
		}
	}
}

func (h *Hub) handle(rooms map[string]map[*Subscriber]struct{}, cmd command) {
	switch cmd.kind {
	case commandSubscribe:
		subs, ok := rooms[cmd.sub.Room]
		if !ok {
			subs = make(map[*Subscriber]struct{})
			rooms[cmd.sub.Room] = subs
		}
		subs[cmd.sub] = struct{}{}
	case commandUnsubscribe:
		if subs, ok := rooms[cmd.sub.Room]; ok {
			delete(subs, cmd.sub)
			if len(subs) == 0 {
				delete(rooms, cmd.sub.Room)
			}
		}
	case commandPublish:
		for sub := range rooms[cmd.msg.RoomCode] {
			select {
			case sub.Events <- Event{Kind: EventMessage, Room: cmd.msg.RoomCode, Message: cmd.msg}:
			default:
				// Drop if slow consumer; the poller catches them up.
			}
		}
	case commandCloseRoom:
		subs, ok := rooms[cmd.room]
		if !ok {
			return
		}
		delete(rooms, cmd.room)
		for sub := range subs {
			select {
			case sub.Events <- Event{Kind: EventRoomClosed, Room: cmd.room}:
			default:
			}
			close(sub.Events)
		}
	}
}

// Subscribe attaches a subscriber to its room.
func (h *Hub) Subscribe(sub *Subscriber) {
	h.send(command{kind: commandSubscribe, sub: sub})
}

// Unsubscribe detaches a subscriber. The subscriber's channel is not
// closed; the caller simply stops reading it.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.send(command{kind: commandUnsubscribe, sub: sub})
}

// Publish delivers a stored message to the room's subscribers. Implements
// core.Publisher; never blocks an append.
func (h *Hub) Publish(msg core.Message) {
	h.send(command{kind: commandPublish, msg: msg})
}

// CloseRoom notifies and detaches all subscribers of an evicted room.
func (h *Hub) CloseRoom(room string) {
	h.send(command{kind: commandCloseRoom, room: room})
}

func (h *Hub) send(cmd command) {
	select {
	case h.commands <- cmd:
	default:
		// Hub overloaded or not running; drop rather than block the caller.
	}
}
