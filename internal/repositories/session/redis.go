package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imposterparty/imposterd/internal/common/clock"
	"github.com/imposterparty/imposterd/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix  = "session:"
	statusIndexPrefix = "sessions:status:"
	allSessionsKey    = "sessions:all"

	playersKeySuffix = ":players"
	votesKeySuffix   = ":votes"
	votersKeySuffix  = ":voters"
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when a session code collides with an existing one
	ErrSessionExists = errors.New("session already exists")
)

// indexedStatuses are the statuses a session can be indexed under
var indexedStatuses = []models.SessionStatus{
	models.SessionStatusWaiting,
	models.SessionStatusPlaying,
	models.SessionStatusEnded,
}

// recordVoteScript atomically guards against double votes, writes the vote,
// and returns fresh voter/target counters. A naive read-modify-write of the
// whole document would lose votes under concurrency.
//
// KEYS[1] = voters set, KEYS[2] = votes hash, KEYS[3] = session hash
// ARGV[1] = voter ID, ARGV[2] = target ID, ARGV[3] = updated_at
var recordVoteScript = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 1 then
	return {-1, 0, 0}
end
redis.call("SADD", KEYS[1], ARGV[1])
redis.call("HSET", KEYS[2], ARGV[1], ARGV[2])
redis.call("HSET", KEYS[3], "updated_at", ARGV[3])
local count = 0
for _, v in ipairs(redis.call("HVALS", KEYS[2])) do
	if v == ARGV[2] then
		count = count + 1
	end
end
return {1, redis.call("SCARD", KEYS[1]), count}
`)

// casPhaseScript transitions current_phase only when it still holds the
// expected value, so concurrent last-voters advance the phase exactly once.
//
// KEYS[1] = session hash
// ARGV[1] = expected phase, ARGV[2] = new phase, ARGV[3] = updated_at
var casPhaseScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "current_phase") == ARGV[1] then
	redis.call("HSET", KEYS[1], "current_phase", ARGV[2])
	redis.call("HSET", KEYS[1], "updated_at", ARGV[3])
	return 1
end
return 0
`)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock stamps updated_at on mutations; defaults to the system clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed session repository
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

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func playersKey(sessionID string) string {
	return sessionKey(sessionID) + playersKeySuffix
}

func votesKey(sessionID string) string {
	return sessionKey(sessionID) + votesKeySuffix
}

func votersKey(sessionID string) string {
	return sessionKey(sessionID) + votersKeySuffix
}

func statusIndexKey(status models.SessionStatus) string {
	return statusIndexPrefix + string(status)
}

// CreateSession inserts a new session document.
// The session code's uniqueness is enforced by an HSETNX guard on the hash.
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	s := input.Session
	if s.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	created, err := r.client.HSetNX(ctx, sessionKey(s.ID), "session_id", s.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve session %s: %w", s.ID, err)
	}
	if !created {
		return ErrSessionExists
	}

	fields, err := encodeSession(s)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, sessionKey(s.ID), fields)
	for _, playerID := range s.PlayerIDs {
		pipe.SAdd(ctx, playersKey(s.ID), playerID)
	}
	pipe.SAdd(ctx, statusIndexKey(s.Status), s.ID)
	pipe.SAdd(ctx, allSessionsKey, s.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}

	return nil
}

// GetSession retrieves a session by ID, including its player list, votes, and voters
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	hashCmd := pipe.HGetAll(ctx, sessionKey(input.SessionID))
	playersCmd := pipe.SMembers(ctx, playersKey(input.SessionID))
	votesCmd := pipe.HGetAll(ctx, votesKey(input.SessionID))
	votersCmd := pipe.SMembers(ctx, votersKey(input.SessionID))

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", input.SessionID, err)
	}

	fields := hashCmd.Val()
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	s, err := decodeSession(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", input.SessionID, err)
	}

	s.PlayerIDs = playersCmd.Val()
	s.Votes = votesCmd.Val()
	s.Voters = votersCmd.Val()
	if s.Votes == nil {
		s.Votes = map[string]string{}
	}

	return s, nil
}

// UpdateSession applies a partial update to a session.
// A missing session is reported as matched=false, not an error.
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (bool, error) {
	if input == nil || input.SessionID == "" || input.Update == nil {
		return false, errors.New("input, session ID, and update cannot be empty")
	}

	exists, err := r.client.Exists(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session %s: %w", input.SessionID, err)
	}
	if exists == 0 {
		return false, nil
	}

	fields, dels, err := encodeSessionUpdate(input.Update)
	if err != nil {
		return false, err
	}
	fields["updated_at"] = encodeTime(r.clock.Now())

	pipe := r.client.Pipeline()

	// Keep the status index in sync when the status changes
	if input.Update.Status != nil {
		for _, status := range indexedStatuses {
			if status == *input.Update.Status {
				pipe.SAdd(ctx, statusIndexKey(status), input.SessionID)
			} else {
				pipe.SRem(ctx, statusIndexKey(status), input.SessionID)
			}
		}
	}

	pipe.HSet(ctx, sessionKey(input.SessionID), fields)
	if len(dels) > 0 {
		pipe.HDel(ctx, sessionKey(input.SessionID), dels...)
	}
	if input.Update.ClearVotes {
		pipe.Del(ctx, votesKey(input.SessionID), votersKey(input.SessionID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to update session %s: %w", input.SessionID, err)
	}

	return true, nil
}

// AddPlayer adds a player ID to the session's player set
func (r *redisRepository) AddPlayer(ctx context.Context, input *AddPlayerInput) error {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return errors.New("input, session ID, and player ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, playersKey(input.SessionID), input.PlayerID)
	pipe.HSet(ctx, sessionKey(input.SessionID), "updated_at", encodeTime(r.clock.Now()))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add player %s to session %s: %w", input.PlayerID, input.SessionID, err)
	}

	return nil
}

// RecordVote atomically records one vote and returns fresh counters
func (r *redisRepository) RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error) {
	if input == nil || input.SessionID == "" || input.VoterID == "" || input.TargetID == "" {
		return nil, errors.New("input, session ID, voter ID, and target ID cannot be empty")
	}

	keys := []string{
		votersKey(input.SessionID),
		votesKey(input.SessionID),
		sessionKey(input.SessionID),
	}
	res, err := recordVoteScript.Run(ctx, r.client, keys,
		input.VoterID, input.TargetID, encodeTime(r.clock.Now())).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to record vote in session %s: %w", input.SessionID, err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 3 {
		return nil, fmt.Errorf("unexpected vote script result for session %s: %v", input.SessionID, res)
	}

	status, _ := vals[0].(int64)
	if status < 0 {
		return &RecordVoteOutput{AlreadyVoted: true}, nil
	}

	voterCount, _ := vals[1].(int64)
	targetVotes, _ := vals[2].(int64)

	return &RecordVoteOutput{
		VoterCount:  int(voterCount),
		TargetVotes: int(targetVotes),
	}, nil
}

// CasPhase transitions current_phase only if it still holds the expected value
func (r *redisRepository) CasPhase(ctx context.Context, input *CasPhaseInput) (bool, error) {
	if input == nil || input.SessionID == "" {
		return false, errors.New("input and session ID cannot be empty")
	}

	res, err := casPhaseScript.Run(ctx, r.client, []string{sessionKey(input.SessionID)},
		string(input.From), string(input.To), encodeTime(r.clock.Now())).Result()
	if err != nil {
		return false, fmt.Errorf("failed to transition session %s: %w", input.SessionID, err)
	}

	swapped, _ := res.(int64)
	return swapped == 1, nil
}

// PurgePlayers removes the given players from the session's player set,
// voters set, and votes map. Evicted players must not block the voting
// phase from auto-advancing or remain eligible targets.
func (r *redisRepository) PurgePlayers(ctx context.Context, input *PurgePlayersInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	if len(input.PlayerIDs) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(input.PlayerIDs))
	for _, id := range input.PlayerIDs {
		members = append(members, id)
	}

	pipe := r.client.Pipeline()
	pipe.SRem(ctx, playersKey(input.SessionID), members...)
	pipe.SRem(ctx, votersKey(input.SessionID), members...)
	pipe.HDel(ctx, votesKey(input.SessionID), input.PlayerIDs...)
	pipe.HSet(ctx, sessionKey(input.SessionID), "updated_at", encodeTime(r.clock.Now()))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to purge players from session %s: %w", input.SessionID, err)
	}

	return nil
}

// ListSessions returns sessions sorted by creation time, newest first.
// Votes and voters are not loaded for listings.
func (r *redisRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	indexKey := allSessionsKey
	if input != nil && input.Status != "" {
		indexKey = statusIndexKey(input.Status)
	}

	sessionIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list session IDs: %w", err)
	}

	if len(sessionIDs) == 0 {
		return &ListSessionsOutput{Sessions: []*models.Session{}}, nil
	}

	pipe := r.client.Pipeline()
	hashCmds := make(map[string]*redis.MapStringStringCmd, len(sessionIDs))
	playerCmds := make(map[string]*redis.StringSliceCmd, len(sessionIDs))

	for _, sessionID := range sessionIDs {
		hashCmds[sessionID] = pipe.HGetAll(ctx, sessionKey(sessionID))
		playerCmds[sessionID] = pipe.SMembers(ctx, playersKey(sessionID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for _, sessionID := range sessionIDs {
		fields := hashCmds[sessionID].Val()
		if len(fields) == 0 {
			// Session was deleted between reading the index and fetching the hash
			continue
		}

		s, err := decodeSession(fields)
		if err != nil {
			return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
		}
		s.PlayerIDs = playerCmds[sessionID].Val()
		s.Votes = map[string]string{}

		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return &ListSessionsOutput{Sessions: sessions}, nil
}

// DeleteSession removes the session hash, vote structures, and index entries
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx,
		sessionKey(input.SessionID),
		playersKey(input.SessionID),
		votesKey(input.SessionID),
		votersKey(input.SessionID),
	)
	for _, status := range indexedStatuses {
		pipe.SRem(ctx, statusIndexKey(status), input.SessionID)
	}
	pipe.SRem(ctx, allSessionsKey, input.SessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", input.SessionID, err)
	}

	return nil
}

// ── Hash codec ──

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// encodeSession flattens a session into hash fields.
// PlayerIDs, Votes, and Voters live in their own Redis structures.
func encodeSession(s *models.Session) (map[string]interface{}, error) {
	fields := map[string]interface{}{
		"session_id":      s.ID,
		"creator_id":      s.CreatorID,
		"game_category":   s.Category,
		"player_topic":    s.PlayerTopic,
		"imposter_topic":  s.ImposterTopic,
		"topics_ready":    encodeBool(s.TopicsReady),
		"max_players":     strconv.Itoa(s.MaxPlayers),
		"status":          string(s.Status),
		"current_phase":   string(s.CurrentPhase),
		"imposter_id":     s.ImposterID,
		"discussion_time": strconv.Itoa(s.DiscussionTime),
		"voting_time":     strconv.Itoa(s.VotingTime),
		"created_at":      encodeTime(s.CreatedAt),
		"updated_at":      encodeTime(s.UpdatedAt),
	}

	if s.StartedAt != nil {
		fields["started_at"] = encodeTime(*s.StartedAt)
	}
	if s.EndedAt != nil {
		fields["ended_at"] = encodeTime(*s.EndedAt)
	}
	if s.RevealAt != nil {
		fields["reveal_at"] = encodeTime(*s.RevealAt)
	}
	if s.GameResult != nil {
		resultJSON, err := json.Marshal(s.GameResult)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal game result: %w", err)
		}
		fields["game_result"] = string(resultJSON)
	}

	return fields, nil
}

// encodeSessionUpdate returns hash fields to set and field names to delete
func encodeSessionUpdate(u *SessionUpdate) (map[string]interface{}, []string, error) {
	fields := map[string]interface{}{}
	var dels []string

	if u.PlayerTopic != nil {
		fields["player_topic"] = *u.PlayerTopic
	}
	if u.ImposterTopic != nil {
		fields["imposter_topic"] = *u.ImposterTopic
	}
	if u.TopicsReady != nil {
		fields["topics_ready"] = encodeBool(*u.TopicsReady)
	}
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	if u.CurrentPhase != nil {
		fields["current_phase"] = string(*u.CurrentPhase)
	}
	if u.ImposterID != nil {
		fields["imposter_id"] = *u.ImposterID
	}
	if u.StartedAt != nil {
		fields["started_at"] = encodeTime(*u.StartedAt)
	}
	if u.EndedAt != nil {
		fields["ended_at"] = encodeTime(*u.EndedAt)
	}
	if u.RevealAt != nil {
		fields["reveal_at"] = encodeTime(*u.RevealAt)
	}

	if u.GameResult != nil {
		resultJSON, err := json.Marshal(u.GameResult)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal game result: %w", err)
		}
		fields["game_result"] = string(resultJSON)
	}

	if u.ClearResult {
		dels = append(dels, "game_result")
	}
	if u.ClearEndedAt {
		dels = append(dels, "ended_at")
	}
	if u.ClearRevealAt {
		dels = append(dels, "reveal_at")
	}

	return fields, dels, nil
}

func decodeTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func decodeTimePtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := decodeTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// decodeSession rebuilds a session from hash fields.
// Unknown fields are rejected so dynamic typing cannot creep back in.
func decodeSession(fields map[string]string) (*models.Session, error) {
	s := &models.Session{}

	for field, value := range fields {
		var err error
		switch field {
		case "session_id":
			s.ID = value
		case "creator_id":
			s.CreatorID = value
		case "game_category":
			s.Category = value
		case "player_topic":
			s.PlayerTopic = value
		case "imposter_topic":
			s.ImposterTopic = value
		case "topics_ready":
			s.TopicsReady = value == "1"
		case "max_players":
			s.MaxPlayers, err = strconv.Atoi(value)
		case "status":
			s.Status = models.SessionStatus(value)
		case "current_phase":
			s.CurrentPhase = models.GamePhase(value)
		case "imposter_id":
			s.ImposterID = value
		case "discussion_time":
			s.DiscussionTime, err = strconv.Atoi(value)
		case "voting_time":
			s.VotingTime, err = strconv.Atoi(value)
		case "game_result":
			result := &models.GameResult{}
			if err = json.Unmarshal([]byte(value), result); err == nil {
				s.GameResult = result
			}
		case "created_at":
			s.CreatedAt, err = decodeTime(value)
		case "updated_at":
			s.UpdatedAt, err = decodeTime(value)
		case "started_at":
			s.StartedAt, err = decodeTimePtr(value)
		case "ended_at":
			s.EndedAt, err = decodeTimePtr(value)
		case "reveal_at":
			s.RevealAt, err = decodeTimePtr(value)
		default:
			return nil, fmt.Errorf("unknown session field %q", field)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid session field %q: %w", field, err)
		}
	}

	return s, nil
}
