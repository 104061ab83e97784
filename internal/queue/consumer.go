package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartActivityConsumer connects to RabbitMQ, declares the message.sent and
// friend.accepted queues (durable), and starts consuming both. Each event is
// appended to logs/activity.log in a single-line, human-friendly format.
// The function runs a reconnect loop with backoff; it keeps running and
// logs any processing errors while rejecting the offending message so the
// server continues operating.
func StartActivityConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("activity-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("activity-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("activity-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{MessageSentQueue, FriendAcceptedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	msgs, err := ch.Consume(MessageSentQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	accepts, err := ch.Consume(FriendAcceptedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message.sent channel closed")
			}
			ack(d, handleMessageSent(d.Body))
		case d, ok := <-accepts:
			if !ok {
				return fmt.Errorf("friend.accepted channel closed")
			}
			ack(d, handleFriendAccepted(d.Body))
		}
	}
}

func ack(d amqp.Delivery, err error) {
	if err != nil {
		log.Printf("activity-consumer: %v", err)
		_ = d.Reject(false)
		return
	}
	_ = d.Ack(false)
}

func handleMessageSent(body []byte) error {
	var ev MessageSentEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode message.sent: %w", err)
	}
	line := fmt.Sprintf("[%s] Message sent | message_id=%d | conversation_id=%d | from=%d(%s) | to=%d(%s)\n",
		ev.SentAt, ev.MessageID, ev.ConversationID, ev.SenderID, ev.SenderName, ev.ReceiverID, ev.ReceiverName)
	return appendActivity(line)
}

func handleFriendAccepted(body []byte) error {
	var ev FriendAcceptedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode friend.accepted: %w", err)
	}
	line := fmt.Sprintf("[%s] Friend request accepted | friendship_id=%d | requester=%d | accepter=%d\n",
		ev.AcceptedAt, ev.FriendshipID, ev.RequesterID, ev.AccepterID)
	return appendActivity(line)
}

func appendActivity(line string) error {
	dir := "logs"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "activity.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
