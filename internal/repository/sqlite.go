package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := store.seedFoodItems(); err != nil {
		// Don't fail startup for this
		log.Warnf("failed to seed food items: %v", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			dietary_restrictions TEXT NOT NULL DEFAULT '[]',
			favorite_cuisines TEXT NOT NULL DEFAULT '[]',
			allergies TEXT NOT NULL DEFAULT '[]',
			spice_level TEXT,
			budget_range TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			message_type TEXT NOT NULL DEFAULT 'text',
			image_url TEXT,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations(session_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			items TEXT NOT NULL,
			total_price REAL NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS food_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price REAL NOT NULL,
			cuisine TEXT NOT NULL,
			image_url TEXT,
			dietary_tags TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_food_items_cuisine ON food_items(cuisine)`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			ts INTEGER NOT NULL,
			type TEXT NOT NULL,
			payload TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, ts)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	// Add new columns for existing DBs (SQLite has limited ALTER TABLE support).
	if err := s.ensureColumn("food_items", "rating", "ALTER TABLE food_items ADD COLUMN rating REAL"); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) ensureColumn(tableName, columnName, ddl string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dfltValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == columnName {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = s.db.Exec(ddl)
	return err
}

func ratingPtr(v float64) *float64 { return &v }

func (s *SQLiteStore) seedFoodItems() error {
	ctx := context.Background()
	items := []domain.FoodItem{
		{
			ID:          "food_margherita",
			Name:        "Pizza Margherita",
			Description: "Molho de tomate, mussarela de búfala e manjericão fresco.",
			Price:       42.90,
			Cuisine:     "italiana",
			DietaryTags: []string{"vegetariano"},
			Rating:      ratingPtr(4.7),
		},
		{
			ID:          "food_pad_thai",
			Name:        "Pad Thai",
			Description: "Talharim de arroz salteado com tofu, amendoim e broto de feijão.",
			Price:       38.50,
			Cuisine:     "tailandesa",
			DietaryTags: []string{"vegano", "sem glúten"},
			Rating:      ratingPtr(4.5),
		},
		{
			ID:          "food_feijoada",
			Name:        "Feijoada",
			Description: "Feijão preto com carnes, servido com arroz, couve e farofa.",
			Price:       55.00,
			Cuisine:     "brasileira",
			DietaryTags: []string{},
			Rating:      ratingPtr(4.8),
		},
		{
			ID:          "food_sushi_combo",
			Name:        "Combinado de Sushi",
			Description: "Vinte peças entre sashimi, niguiri e uramaki.",
			Price:       89.90,
			Cuisine:     "japonesa",
			DietaryTags: []string{"sem lactose"},
			Rating:      ratingPtr(4.6),
		},
		{
			ID:          "food_tacos",
			Name:        "Tacos al Pastor",
			Description: "Três tacos de porco marinado com abacaxi e pimenta.",
			Price:       36.00,
			Cuisine:     "mexicana",
			DietaryTags: []string{"picante"},
			Rating:      ratingPtr(4.4),
		},
		{
			ID:          "food_falafel",
			Name:        "Falafel no Pão Sírio",
			Description: "Bolinhos de grão-de-bico com tahine e salada.",
			Price:       29.90,
			Cuisine:     "árabe",
			DietaryTags: []string{"vegano"},
		},
	}

	for _, item := range items {
		if err := s.CreateFoodItem(ctx, &item); err != nil {
			// Ignore if exists
			if !strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return err
			}
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func marshalList(v []string) string {
	if v == nil {
		v = []string{}
	}
	data, _ := json.Marshal(v)
	return string(data)
}

func unmarshalList(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

// GetPreferences retrieves a user's preference record.
func (s *SQLiteStore) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	var prefs domain.Preferences
	var dietary, cuisines, allergies string
	var spice, budget sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, dietary_restrictions, favorite_cuisines, allergies, spice_level, budget_range
		 FROM users WHERE user_id = ?`, userID).
		Scan(&prefs.UserID, &dietary, &cuisines, &allergies, &spice, &budget)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	prefs.DietaryRestrictions = unmarshalList(dietary)
	prefs.FavoriteCuisines = unmarshalList(cuisines)
	prefs.Allergies = unmarshalList(allergies)
	if spice.Valid {
		prefs.SpiceLevel = domain.SpiceLevel(spice.String)
	}
	if budget.Valid {
		prefs.BudgetRange = domain.BudgetRange(budget.String)
	}
	return &prefs, nil
}

// UpsertPreferences creates or replaces a user's preference record.
func (s *SQLiteStore) UpsertPreferences(ctx context.Context, prefs *domain.Preferences) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, created_at, dietary_restrictions, favorite_cuisines, allergies, spice_level, budget_range)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			dietary_restrictions = excluded.dietary_restrictions,
			favorite_cuisines = excluded.favorite_cuisines,
			allergies = excluded.allergies,
			spice_level = excluded.spice_level,
			budget_range = excluded.budget_range`,
		prefs.UserID, time.Now(),
		marshalList(prefs.DietaryRestrictions), marshalList(prefs.FavoriteCuisines), marshalList(prefs.Allergies),
		nullString(string(prefs.SpiceLevel)), nullString(string(prefs.BudgetRange)))
	return err
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// CreateConversationMessage appends a row to the conversation log.
func (s *SQLiteStore) CreateConversationMessage(ctx context.Context, msg *domain.ConversationMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, session_id, user_id, role, content, message_type, image_url, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.UserID, msg.Role, msg.Content, msg.MessageType, nullString(msg.ImageURL), msg.Timestamp)
	return err
}

// ListConversationMessages returns a session's log in insertion order.
func (s *SQLiteStore) ListConversationMessages(ctx context.Context, sessionID string) ([]domain.ConversationMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, user_id, role, content, message_type, image_url, timestamp
		 FROM conversations WHERE session_id = ? ORDER BY timestamp ASC, rowid ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ConversationMessage{}
	for rows.Next() {
		var msg domain.ConversationMessage
		var imageURL sql.NullString
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserID, &msg.Role, &msg.Content, &msg.MessageType, &imageURL, &msg.Timestamp); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			msg.ImageURL = imageURL.String
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// DeleteConversation removes a session's log and returns the number of rows deleted.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, sessionID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CreateOrder creates a new order.
func (s *SQLiteStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, items, total_price, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, string(items), order.TotalPrice, order.Status, order.CreatedAt, order.UpdatedAt)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var items string
	if err := row.Scan(&order.ID, &order.UserID, &items, &order.TotalPrice, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items of order %s: %w", order.ID, err)
	}
	return &order, nil
}

// GetOrder retrieves an order by ID.
func (s *SQLiteStore) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, items, total_price, status, created_at, updated_at FROM orders WHERE id = ?`, orderID)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return order, err
}

// ListOrdersByUser returns a user's orders, newest first.
func (s *SQLiteStore) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, items, total_price, status, created_at, updated_at
		 FROM orders WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus sets an order's status and returns the updated order,
// or nil when the order does not exist.
func (s *SQLiteStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now(), orderID)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetOrder(ctx, orderID)
}

// CreateFoodItem adds an item to the catalog.
func (s *SQLiteStore) CreateFoodItem(ctx context.Context, item *domain.FoodItem) error {
	var rating sql.NullFloat64
	if item.Rating != nil {
		rating = sql.NullFloat64{Float64: *item.Rating, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO food_items (id, name, description, price, cuisine, image_url, dietary_tags, rating)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Description, item.Price, item.Cuisine,
		nullString(item.ImageURL), marshalList(item.DietaryTags), rating)
	return err
}

// ListFoodItems lists the catalog, optionally filtered by cuisine.
func (s *SQLiteStore) ListFoodItems(ctx context.Context, cuisine string) ([]domain.FoodItem, error) {
	query := `SELECT id, name, description, price, cuisine, image_url, dietary_tags, rating FROM food_items`
	var args []interface{}
	if cuisine != "" {
		query += ` WHERE cuisine = ? COLLATE NOCASE`
		args = append(args, cuisine)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.FoodItem{}
	for rows.Next() {
		var item domain.FoodItem
		var description, imageURL sql.NullString
		var tags string
		var rating sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Name, &description, &item.Price, &item.Cuisine, &imageURL, &tags, &rating); err != nil {
			return nil, err
		}
		item.Description = description.String
		item.ImageURL = imageURL.String
		item.DietaryTags = unmarshalList(tags)
		if rating.Valid {
			item.Rating = ratingPtr(rating.Float64)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateEvent creates a new event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_id, session_id, ts, type, payload) VALUES (?, ?, ?, ?, ?)`,
		event.EventID, event.SessionID, event.Ts, event.Type, string(event.Payload))
	return err
}

// ListEvents retrieves a session's events in time order.
func (s *SQLiteStore) ListEvents(ctx context.Context, sessionID string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, session_id, ts, type, payload FROM events WHERE session_id = ? ORDER BY ts ASC, rowid ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var event domain.Event
		var payload sql.NullString
		if err := rows.Scan(&event.EventID, &event.SessionID, &event.Ts, &event.Type, &payload); err != nil {
			return nil, err
		}
		if payload.Valid && payload.String != "" {
			event.Payload = json.RawMessage(payload.String)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
