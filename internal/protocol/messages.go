package protocol

import (
	"encoding/xml"
	"fmt"

	"github.com/mcoot/piranhas-client/internal/model"
)

// GameType identifies the game when joining without a reservation
const GameType = "swc_2019_piranhas"

const (
	protocolOpen  = "<protocol>"
	protocolClose = "</protocol>"
)

// Data element classes
const (
	ClassMove            = "move"
	ClassMoveRequest     = "move-request"
	ClassMoveRequestLong = "sc.framework.plugins.protocol.MoveRequest"
	ClassResult          = "result"
	ClassWelcome         = "welcomeMessage"
)

type joinMessage struct {
	XMLName  xml.Name `xml:"join"`
	GameType string   `xml:"gameType,attr"`
}

type joinPreparedMessage struct {
	XMLName         xml.Name `xml:"joinPrepared"`
	ReservationCode string   `xml:"reservationCode,attr"`
}

type roomMessage struct {
	XMLName xml.Name    `xml:"room"`
	RoomID  string      `xml:"roomId,attr"`
	Data    moveMessage `xml:"data"`
}

type moveMessage struct {
	Class     string          `xml:"class,attr"`
	X         int             `xml:"x,attr"`
	Y         int             `xml:"y,attr"`
	Direction model.Direction `xml:"direction,attr"`
	Hints     []hintMessage   `xml:"hint"`
}

type hintMessage struct {
	Content string `xml:"content,attr"`
}

// EncodeJoin opens the protocol stream and asks to join. A non-empty
// reservation joins the prepared game it belongs to.
func EncodeJoin(gameType, reservation string) ([]byte, error) {
	var msg any = joinMessage{GameType: gameType}
	if reservation != "" {
		msg = joinPreparedMessage{ReservationCode: reservation}
	}

	body, err := xml.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode join: %w", err)
	}
	return append([]byte(protocolOpen), body...), nil
}

// EncodeMove addresses a move to the given room, hints in order
func EncodeMove(roomID string, move model.Move) ([]byte, error) {
	msg := roomMessage{
		RoomID: roomID,
		Data: moveMessage{
			Class:     ClassMove,
			X:         move.X,
			Y:         move.Y,
			Direction: move.Direction,
		},
	}
	for _, h := range move.DebugHints {
		msg.Data.Hints = append(msg.Data.Hints, hintMessage{Content: h})
	}

	body, err := xml.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode move: %w", err)
	}
	return body, nil
}

// EncodeClose ends the protocol stream
func EncodeClose() []byte {
	return []byte(protocolClose)
}

func isMoveRequest(class string) bool {
	return class == ClassMoveRequest || class == ClassMoveRequestLong
}
