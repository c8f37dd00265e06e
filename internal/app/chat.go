package app

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chakronwork/SmartStay/internal/domain"
)

// ErrNoAssistant means the completion credential was never configured;
// the relay is up but cannot answer.
var ErrNoAssistant = errors.New("assistant is not configured")

const maxChatTurns = 6

// personaPrompt is the fixed SmartBot instruction block. The user's
// message (and any remembered turns) is interpolated into it per call.
const personaPrompt = `บทบาท: คุณคือ "SmartBot" ผู้ช่วยอัจฉริยะประจำเว็บไซต์ SmartStay (ระบบจองโรงแรม)

ข้อมูลพื้นฐานของ SmartStay:
- เป็นเว็บจองที่พักสำหรับนักศึกษาและบุคคลทั่วไป
- เมนูที่มี: หน้าแรก, ค้นหาโรงแรม, เช็คอิน/เช็คเอาท์, ดูประวัติการจอง
- เบอร์ติดต่อ: 02-123-4567, อีเมล: contact@smartstay.com
- สถานที่ตั้ง: อาคารเทคโนโลยีสารสนเทศ

คำสั่ง:
- ตอบคำถามลูกค้าด้วยภาษาไทยที่สุภาพ เป็นกันเอง และกระชับ (สไตล์คนรุ่นใหม่)
- ถ้าลูกค้าถามเรื่องนอกเหนือจากการจองที่พักหรือข้อมูลโรงแรม ให้ตอบเลี่ยงๆ อย่างสุภาพว่าตอบไม่ได้
- ห้ามแต่งเรื่องเอง ถ้าไม่รู้ให้บอกว่าให้ติดต่อเจ้าหน้าที่
`

// ChatService relays one user message to the completion service wrapped
// in the SmartBot persona. Recent turns of a session are remembered in
// the cache so follow-up questions keep their context; nothing is stored
// durably.
type ChatService struct {
	assistant domain.Assistant // nil when the credential is absent
	cache     domain.Cache
	memTTL    time.Duration
}

func NewChatService(a domain.Assistant, c domain.Cache, memTTL time.Duration) *ChatService {
	return &ChatService{assistant: a, cache: c, memTTL: memTTL}
}

type chatTurn struct {
	Role string `json:"role"` // user|bot
	Text string `json:"text"`
}

// Reply answers message within the session. An empty sessionID starts a
// new session; the (possibly new) id is returned alongside the reply.
func (s *ChatService) Reply(ctx context.Context, sessionID, message string) (string, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", "", fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if s.assistant == nil {
		return "", "", ErrNoAssistant
	}
	if sessionID == "" {
		sessionID = newSessionID()
	}

	var history []chatTurn
	if s.cache != nil {
		_, _ = s.cache.Get(ctx, keyChatSession(sessionID), &history)
	}

	reply, err := s.assistant.Generate(ctx, buildPrompt(history, message))
	if err != nil {
		return "", "", err
	}

	if s.cache != nil {
		history = append(history, chatTurn{Role: "user", Text: message}, chatTurn{Role: "bot", Text: reply})
		if len(history) > maxChatTurns*2 {
			history = history[len(history)-maxChatTurns*2:]
		}
		if err := s.cache.Set(ctx, keyChatSession(sessionID), history, s.memTTL); err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("chat memory write failed")
		}
	}
	return reply, sessionID, nil
}

func buildPrompt(history []chatTurn, message string) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	if len(history) > 0 {
		b.WriteString("\nบทสนทนาก่อนหน้า:\n")
		for _, t := range history {
			if t.Role == "bot" {
				b.WriteString("SmartBot: ")
			} else {
				b.WriteString("ลูกค้า: ")
			}
			b.WriteString(t.Text)
			b.WriteByte('\n')
		}
	}
	b.WriteString("\nคำถามจากลูกค้า: ")
	b.WriteString(message)
	return b.String()
}

func newSessionID() string {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
