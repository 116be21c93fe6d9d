package common

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	FlashInfo    = "info"
	FlashWarning = "warning"
)

var flashCategories = []string{FlashInfo, FlashWarning}

type Flash struct {
	Category string
	Message  string
}

func flashKey(category string) string {
	return "_flash_" + category
}

// AddFlash queues a message for the next rendered page of this session.
func AddFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, flashKey(category))
	if err := session.Save(); err != nil {
		log.Printf("Error saving flash message: %v", err)
	}
}

// Flashes drains the queued messages, warnings last.
func Flashes(c *gin.Context) []Flash {
	session := sessions.Default(c)

	var flashes []Flash
	for _, category := range flashCategories {
		for _, v := range session.Flashes(flashKey(category)) {
			if msg, ok := v.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: msg})
			}
		}
	}

	if len(flashes) > 0 {
		if err := session.Save(); err != nil {
			log.Printf("Error saving session after reading flashes: %v", err)
		}
	}
	return flashes
}
