package scoring

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/WeirdIdea/OTUS-06/store"
)

// Person carries the already-validated identity fields a score is derived
// from. Birthday and Gender distinguish "set" from their zero values.
type Person struct {
	Phone     string
	Email     string
	FirstName string
	LastName  string

	Birthday    time.Time
	HasBirthday bool

	Gender    int64
	HasGender bool
}

// scoreTTL is how long a computed score stays cached for one identity.
const scoreTTL = time.Hour

// cacheKey derives the cache key from the stable identity fields.
func cacheKey(p Person) string {
	birthday := ""
	if p.HasBirthday {
		birthday = p.Birthday.Format("20060102")
	}
	sum := md5.Sum([]byte(p.FirstName + p.LastName + p.Phone + birthday))
	return "uid:" + hex.EncodeToString(sum[:])
}

// GetScore returns the score for a person, consulting the cache first.
// A positive cached score is returned as-is; otherwise the score is the
// weighted sum of the supplied field pairs and is cached for an hour.
func GetScore(ctx context.Context, st store.Store, p Person) (float64, error) {
	key := cacheKey(p)
	if cached, ok := st.CacheGet(ctx, key); ok {
		if score, err := strconv.ParseFloat(cached, 64); err == nil && score > 0 {
			return score, nil
		}
	}

	var score float64
	if p.Phone != "" {
		score += 1.5
	}
	if p.Email != "" {
		score += 1.5
	}
	if p.HasBirthday && p.HasGender {
		score += 1.5
	}
	if p.FirstName != "" && p.LastName != "" {
		score += 0.5
	}

	st.CacheSet(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), scoreTTL)
	return score, nil
}

// GetInterests returns the interest list stored for a client. A client
// without a stored record has no interests; a broken store is an error.
func GetInterests(ctx context.Context, st store.Store, clientID int64) ([]string, error) {
	raw, err := st.Get(ctx, "i:"+strconv.FormatInt(clientID, 10))
	if errors.Is(err, store.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		return nil, fmt.Errorf("decoding interests for client %d: %w", clientID, err)
	}
	return interests, nil
}
