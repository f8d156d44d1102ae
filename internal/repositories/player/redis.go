package player

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imposterparty/imposterd/internal/common/clock"
	"github.com/imposterparty/imposterd/internal/models"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix  = "player:"
	rosterKeyPrefix  = "session_roster:"
	timestampEncoded = time.RFC3339Nano
)

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock stamps heartbeats; defaults to the system clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := cfg.Clock
	if c == nil {
		c = &clock.DefaultClock{}
	}

	return &redisRepository{
		client: cfg.RedisClient,
		clock:  c,
	}, nil
}

func playerKey(sessionID, playerID string) string {
	return fmt.Sprintf("%s%s:%s", playerKeyPrefix, sessionID, playerID)
}

func rosterKey(sessionID string) string {
	return rosterKeyPrefix + sessionID
}

// CreatePlayer inserts a player document and registers it on the session roster
func (r *redisRepository) CreatePlayer(ctx context.Context, input *CreatePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	p := input.Player
	if p.SessionID == "" || p.ID == "" {
		return errors.New("player session ID and player ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, playerKey(p.SessionID, p.ID), encodePlayer(p))
	pipe.SAdd(ctx, rosterKey(p.SessionID), p.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player %s in session %s: %w", p.ID, p.SessionID, err)
	}

	return nil
}

// GetPlayer retrieves one player document
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return nil, errors.New("input, session ID, and player ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, playerKey(input.SessionID, input.PlayerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", input.PlayerID, err)
	}
	if len(fields) == 0 {
		return nil, ErrPlayerNotFound
	}

	p, err := decodePlayer(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode player %s: %w", input.PlayerID, err)
	}

	return p, nil
}

// ListPlayers returns all player documents for a session
func (r *redisRepository) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	playerIDs, err := r.client.SMembers(ctx, rosterKey(input.SessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get roster for session %s: %w", input.SessionID, err)
	}

	if len(playerIDs) == 0 {
		return &ListPlayersOutput{Players: []*models.Player{}}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make(map[string]*redis.MapStringStringCmd, len(playerIDs))
	for _, playerID := range playerIDs {
		cmds[playerID] = pipe.HGetAll(ctx, playerKey(input.SessionID, playerID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get players for session %s: %w", input.SessionID, err)
	}

	players := make([]*models.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		fields := cmds[playerID].Val()
		if len(fields) == 0 {
			// Player was deleted between reading the roster and fetching the doc
			continue
		}

		p, err := decodePlayer(fields)
		if err != nil {
			return nil, fmt.Errorf("failed to decode player %s: %w", playerID, err)
		}

		if input.AliveOnly && !p.IsAlive {
			continue
		}
		players = append(players, p)
	}

	return &ListPlayersOutput{Players: players}, nil
}

// SetPlayerFields applies a partial update to a player document.
// A missing player is reported as matched=false, not an error.
func (r *redisRepository) SetPlayerFields(ctx context.Context, input *SetPlayerFieldsInput) (bool, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" || input.Update == nil {
		return false, errors.New("input, session ID, player ID, and update cannot be empty")
	}

	key := playerKey(input.SessionID, input.PlayerID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check player %s: %w", input.PlayerID, err)
	}
	if exists == 0 {
		return false, nil
	}

	fields := map[string]interface{}{}
	if input.Update.IsImposter != nil {
		fields["is_imposter"] = encodeBool(*input.Update.IsImposter)
	}
	if input.Update.IsAlive != nil {
		fields["is_alive"] = encodeBool(*input.Update.IsAlive)
	}
	if input.Update.VotesReceived != nil {
		fields["votes_received"] = strconv.Itoa(*input.Update.VotesReceived)
	}

	if len(fields) == 0 {
		return true, nil
	}

	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return false, fmt.Errorf("failed to update player %s: %w", input.PlayerID, err)
	}

	return true, nil
}

// ClearImposters sets is_imposter=false on every player in the session.
// Run before assigning the new imposter so no stale flag survives the round.
func (r *redisRepository) ClearImposters(ctx context.Context, input *ClearImpostersInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	return r.setOnRoster(ctx, input.SessionID, map[string]interface{}{
		"is_imposter": encodeBool(false),
	})
}

// ResetForNewRound revives every player and clears role and vote counters
func (r *redisRepository) ResetForNewRound(ctx context.Context, input *ResetForNewRoundInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	return r.setOnRoster(ctx, input.SessionID, map[string]interface{}{
		"is_imposter":    encodeBool(false),
		"is_alive":       encodeBool(true),
		"votes_received": "0",
	})
}

// TouchHeartbeat stamps a player's last_heartbeat with the current time
func (r *redisRepository) TouchHeartbeat(ctx context.Context, input *TouchHeartbeatInput) (bool, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return false, errors.New("input, session ID, and player ID cannot be empty")
	}

	key := playerKey(input.SessionID, input.PlayerID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check player %s: %w", input.PlayerID, err)
	}
	if exists == 0 {
		return false, nil
	}

	err = r.client.HSet(ctx, key, "last_heartbeat", encodeTime(r.clock.Now())).Err()
	if err != nil {
		return false, fmt.Errorf("failed to touch heartbeat for player %s: %w", input.PlayerID, err)
	}

	return true, nil
}

// MarkDead sets is_alive=false on the given players
func (r *redisRepository) MarkDead(ctx context.Context, input *MarkDeadInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	if len(input.PlayerIDs) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, playerID := range input.PlayerIDs {
		pipe.HSet(ctx, playerKey(input.SessionID, playerID), "is_alive", encodeBool(false))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark players dead in session %s: %w", input.SessionID, err)
	}

	return nil
}

// DeletePlayers removes every player document for a session
func (r *redisRepository) DeletePlayers(ctx context.Context, input *DeletePlayersInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	playerIDs, err := r.client.SMembers(ctx, rosterKey(input.SessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to get roster for session %s: %w", input.SessionID, err)
	}

	pipe := r.client.Pipeline()
	for _, playerID := range playerIDs {
		pipe.Del(ctx, playerKey(input.SessionID, playerID))
	}
	pipe.Del(ctx, rosterKey(input.SessionID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete players for session %s: %w", input.SessionID, err)
	}

	return nil
}

// setOnRoster applies the same hash fields to every player on the roster
func (r *redisRepository) setOnRoster(ctx context.Context, sessionID string, fields map[string]interface{}) error {
	playerIDs, err := r.client.SMembers(ctx, rosterKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to get roster for session %s: %w", sessionID, err)
	}

	if len(playerIDs) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, playerID := range playerIDs {
		pipe.HSet(ctx, playerKey(sessionID, playerID), fields)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update players in session %s: %w", sessionID, err)
	}

	return nil
}

// ── Hash codec ──

func encodeTime(t time.Time) string {
	return t.UTC().Format(timestampEncoded)
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func encodePlayer(p *models.Player) map[string]interface{} {
	return map[string]interface{}{
		"session_id":     p.SessionID,
		"player_id":      p.ID,
		"player_name":    p.Name,
		"is_imposter":    encodeBool(p.IsImposter),
		"is_alive":       encodeBool(p.IsAlive),
		"votes_received": strconv.Itoa(p.VotesReceived),
		"joined_at":      encodeTime(p.JoinedAt),
		"last_heartbeat": encodeTime(p.LastHeartbeat),
	}
}

// decodePlayer rebuilds a player from hash fields.
// Unknown fields are rejected so dynamic typing cannot creep back in.
func decodePlayer(fields map[string]string) (*models.Player, error) {
	p := &models.Player{}

	for field, value := range fields {
		var err error
		switch field {
		case "session_id":
			p.SessionID = value
		case "player_id":
			p.ID = value
		case "player_name":
			p.Name = value
		case "is_imposter":
			p.IsImposter = value == "1"
		case "is_alive":
			p.IsAlive = value == "1"
		case "votes_received":
			p.VotesReceived, err = strconv.Atoi(value)
		case "joined_at":
			p.JoinedAt, err = time.Parse(timestampEncoded, value)
		case "last_heartbeat":
			p.LastHeartbeat, err = time.Parse(timestampEncoded, value)
		default:
			return nil, fmt.Errorf("unknown player field %q", field)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid player field %q: %w", field, err)
		}
	}

	return p, nil
}
