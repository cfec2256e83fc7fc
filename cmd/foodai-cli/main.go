// Package main provides a terminal chat client for the FoodAI WebSocket endpoint.
package main

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/transport/ws"
)

// Client represents a WebSocket client.
type Client struct {
	conn      *websocket.Conn
	sessionID string
	userID    string
	done      chan struct{}
}

// NewClient creates a new client and connects to the server.
func NewClient(addr string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return &Client{
		conn: conn,
		done: make(chan struct{}),
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	close(c.done)
	return c.conn.Close()
}

// SendHello sends a hello message and waits for hello_ack.
func (c *Client) SendHello(sessionID, userID string) error {
	msg := ws.HelloMessage{
		BaseMessage: ws.BaseMessage{
			Type:      ws.TypeHello,
			Ts:        time.Now().UnixMilli(),
			SessionID: sessionID,
		},
		UserID: userID,
	}

	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write hello: %w", err)
	}

	// Wait for hello_ack
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read hello_ack: %w", err)
	}

	var ack ws.HelloAckMessage
	if err := json.Unmarshal(data, &ack); err != nil {
		return fmt.Errorf("unmarshal hello_ack: %w", err)
	}

	if ack.Type == ws.TypeError {
		var errMsg ws.ErrorMessage
		json.Unmarshal(data, &errMsg)
		return fmt.Errorf("hello failed: %s - %s", errMsg.Code, errMsg.Message)
	}

	if ack.Type != ws.TypeHelloAck {
		return fmt.Errorf("expected hello_ack, got: %s", ack.Type)
	}

	c.sessionID = ack.SessionID
	c.userID = ack.UserID
	return nil
}

// SendChat sends a chat message, optionally with an image file attached.
func (c *Client) SendChat(content, imagePath string) error {
	msg := ws.ChatMessage{
		BaseMessage: ws.BaseMessage{
			Type:      ws.TypeChat,
			Ts:        time.Now().UnixMilli(),
			SessionID: c.sessionID,
			RequestID: fmt.Sprintf("req_%d", time.Now().UnixNano()),
		},
		Message: content,
	}
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		msg.ImageData = base64.StdEncoding.EncodeToString(data)
	}

	return c.conn.WriteJSON(msg)
}

// SendClear asks the server to forget the session.
func (c *Client) SendClear() error {
	return c.conn.WriteJSON(ws.BaseMessage{
		Type:      ws.TypeClearSession,
		Ts:        time.Now().UnixMilli(),
		SessionID: c.sessionID,
	})
}

// ReadMessages reads and prints messages from the server.
func (c *Client) ReadMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Warnf("Read error: %v", err)
				}
				return
			}

			var base ws.BaseMessage
			if err := json.Unmarshal(data, &base); err != nil {
				log.Warnf("Unmarshal error: %v", err)
				continue
			}

			switch base.Type {
			case ws.TypeChatReply:
				var reply ws.ChatReplyMessage
				json.Unmarshal(data, &reply)
				fmt.Printf("\nFoodAI: %s\n> ", reply.Message)
			case ws.TypeSessionCleared:
				fmt.Printf("\n[session %s cleared]\n> ", base.SessionID)
			case ws.TypeError:
				var errMsg ws.ErrorMessage
				json.Unmarshal(data, &errMsg)
				fmt.Printf("\n[error %s] %s\n> ", errMsg.Code, errMsg.Message)
			default:
				fmt.Printf("\n[%s] %s\n> ", base.Type, string(data))
			}
		}
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:8000/api/chat/ws", "WebSocket server address")
	sessionID := flag.String("session", "", "Session ID (generated by the server if empty)")
	userID := flag.String("user", "cli_user", "User ID whose preferences are applied")
	flag.Parse()

	fmt.Printf("Connecting to %s...\n", *addr)

	client, err := NewClient(*addr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	if err := client.SendHello(*sessionID, *userID); err != nil {
		log.Fatalf("Hello failed: %v", err)
	}

	fmt.Printf("Session established: %s (user %s)\n", client.sessionID, client.userID)
	fmt.Println("\nType a message and press Enter to send.")
	fmt.Println("Commands: /image <path> <message>, /clear, /quit")

	// Start reading messages in background
	go client.ReadMessages()

	// Handle Ctrl+C
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// Read user input
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		select {
		case <-interrupt:
			fmt.Println("\nInterrupted")
			return
		default:
			if !scanner.Scan() {
				return
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}

			switch {
			case input == "/quit":
				fmt.Println("Até logo!")
				return
			case input == "/clear":
				err = client.SendClear()
			case strings.HasPrefix(input, "/image "):
				fields := strings.SplitN(strings.TrimPrefix(input, "/image "), " ", 2)
				message := ""
				if len(fields) == 2 {
					message = fields[1]
				}
				err = client.SendChat(message, fields[0])
			default:
				err = client.SendChat(input, "")
			}
			if err != nil {
				log.Errorf("Send error: %v", err)
			}
		}
	}
}
