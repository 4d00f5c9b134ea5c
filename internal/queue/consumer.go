package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the
// booking.confirmed and booking.cancelled queues (durable) and starts
// consuming both.  Each message is appended to logs/booking.log as a
// single human-readable audit line.  The function runs a reconnect
// loop forever; processing errors reject the offending message without
// requeueing so the server keeps operating.
func StartBookingConsumer() error {
	url := BrokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
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
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{ConfirmedQueue, CancelledQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	confirmed, err := ch.Consume(ConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ConfirmedQueue, err)
	}
	cancelled, err := ch.Consume(CancelledQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", CancelledQueue, err)
	}

	for {
		var (
			d  amqp.Delivery
			ok bool
			fn func([]byte) error
		)
		select {
		case d, ok = <-confirmed:
			fn = handleConfirmed
		case d, ok = <-cancelled:
			fn = handleCancelled
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := fn(d.Body); err != nil {
			log.Printf("booking-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
}

func handleConfirmed(body []byte) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Booking confirmed | booking_id=%d | ref=%s | user_id=%d | schedule_id=%d | train=\"%s\" | route=\"%s -> %s\" | compartment_id=%d | seat=%d | passenger=\"%s\" | fare=%d\n",
		ev.ConfirmedAt, ev.BookingID, ev.BookingRef, ev.UserID, ev.ScheduleID, ev.TrainName, ev.FromStation, ev.ToStation, ev.CompartmentID, ev.SeatNumber, ev.PassengerName, ev.FareAmount)
	return appendAuditLine(line)
}

func handleCancelled(body []byte) error {
	var ev BookingCancelledEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Booking cancelled | booking_id=%d | ref=%s | user_id=%d | schedule_id=%d | compartment_id=%d | seat=%d\n",
		ev.CancelledAt, ev.BookingID, ev.BookingRef, ev.UserID, ev.ScheduleID, ev.CompartmentID, ev.SeatNumber)
	return appendAuditLine(line)
}

func appendAuditLine(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "booking.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
