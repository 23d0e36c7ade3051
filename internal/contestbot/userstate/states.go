package userstate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"contestbot/internal/database"
)

const (
	None int = iota

	//registration
	WaitingPhone

	//admin flows
	ComposeBroadcast
	EnterSingleTarget
	ComposeSingleMessage
	EnterSearchQuery
	EnterNewAdminId
	EnterSubscription
	EditContestText
	EditGiftsText
	EditTermsText
)

const stateTtl = 24 * time.Hour

func stateKey(chatId int64) string {
	return fmt.Sprintf("contestbot:state:%d", chatId)
}

func payloadKey(chatId int64) string {
	return fmt.Sprintf("contestbot:state:payload:%d", chatId)
}

// CurrentState reads the chat's conversation state. A missing key means None.
func CurrentState(ctx context.Context, chatId int64) int {
	val, err := database.Client.Get(ctx, stateKey(chatId)).Result()
	if err != nil {
		return None
	}
	state, err := strconv.Atoi(val)
	if err != nil {
		return None
	}
	return state
}

func SetState(ctx context.Context, chatId int64, state int) error {
	return database.Client.Set(ctx, stateKey(chatId), state, stateTtl).Err()
}

func ResetState(ctx context.Context, chatId int64) {
	database.Client.Del(ctx, stateKey(chatId), payloadKey(chatId))
}

// SetPayload stashes flow data that survives across messages, like the
// target chat id of a single-user message.
func SetPayload(ctx context.Context, chatId int64, payload string) error {
	return database.Client.Set(ctx, payloadKey(chatId), payload, stateTtl).Err()
}

func Payload(ctx context.Context, chatId int64) (string, error) {
	val, err := database.Client.Get(ctx, payloadKey(chatId)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}
