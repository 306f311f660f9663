package service

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// fakeConn records what a session writes to it.
type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	controls int
	closed   bool
	fail     bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, v.(ws.Message))
	return nil
}

func (f *fakeConn) WriteMessage(int, []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.controls++
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []ws.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ws.Message(nil), f.messages...)
}

func (f *fakeConn) lastView() GameView {
	msgs := f.received()
	var view GameView
	if len(msgs) == 0 {
		return view
	}
	if err := json.Unmarshal(msgs[len(msgs)-1].Payload, &view); err != nil {
		panic(err)
	}
	return view
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// promotionBoard has a white pawn on a7 ready to promote.
const promotionBoard = `
--------wK------
----------------
----------------
----------------
----------------
----------------
wP--------------
--------------bK
`
