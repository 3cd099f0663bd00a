package consumer

import (
	"encoding/json"
	"log"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileConsumer keeps the local role-profile tables in sync with the
// upstream profile services. The routing key suffix selects the role table.
type ProfileConsumer struct {
	db *gorm.DB
}

func NewProfileConsumer(db *gorm.DB) *ProfileConsumer {
	return &ProfileConsumer{db: db}
}

func (pc *ProfileConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		log.Println("[ProfileConsumer] channel closed, stopping consumer")
	}()
}

func (pc *ProfileConsumer) handleMessage(msg amqp.Delivery) {
	switch msg.RoutingKey {
	case "profile.attendee":
		pc.upsert(msg, &models.Attendee{}, attendeeColumns)
	case "profile.exhibitor":
		pc.upsert(msg, &models.Exhibitor{}, exhibitorColumns)
	case "profile.speaker":
		pc.upsert(msg, &models.Speaker{}, speakerColumns)
	default:
		log.Printf("[ProfileConsumer] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
	}
}

func (pc *ProfileConsumer) upsert(msg amqp.Delivery, record any, columns []string) {
	if err := json.Unmarshal(msg.Body, record); err != nil {
		log.Printf("[ProfileConsumer] failed to unmarshal %s: %v", msg.RoutingKey, err)
		msg.Nack(false, false)
		return
	}

	// Insert or update on the actor's stable identifier.
	result := pc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(record)

	if result.Error != nil {
		log.Printf("[ProfileConsumer] failed to upsert %s: %v", msg.RoutingKey, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[ProfileConsumer] synced %s", msg.RoutingKey)
	msg.Ack(false)
}

var sharedColumns = []string{
	"event_id", "full_name", "looking_for", "offering",
	"industries", "regions", "languages", "open_to_meetings", "updated_at",
}

var (
	attendeeColumns  = append([]string{"job_title"}, sharedColumns...)
	exhibitorColumns = append([]string{"company_name", "booth_number"}, sharedColumns...)
	speakerColumns   = append([]string{"talk_title"}, sharedColumns...)
)
