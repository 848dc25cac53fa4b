package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"jass/internal/app"
	"jass/internal/bot"
	"jass/internal/config"
	"jass/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

var errWorkerClosed = errors.New("bot worker closed without a result")

// MatchState holds the authoritative runtime state for one human playing
// against the computer side.
type MatchState struct {
	MatchID      string           `json:"match_id"`
	HumanID      string           `json:"human_id"`       // only user allowed to join
	Tick         int64            `json:"tick"`           // current tick of the match
	Rounds       int              `json:"rounds"`         // rounds started so far
	NextLeader   domain.Side      `json:"next_leader"`    // alternates, human leads the first round
	Presence     runtime.Presence `json:"-"`              // nil while the human is not connected
	App          *app.Service     `json:"-"`              // round use-cases
	Round        *domain.Round    `json:"-"`              // nil before the first round
	Settle       *settleTracker   `json:"-"`              // motion probe fed by OpCardSettled
	BotLevel     bot.BotLevel     `json:"bot_level"`      // strategy behind the computer side
	Identity     bot.BotIdentity  `json:"-"`              // how the computer side is presented
	Bot          *bot.Agent       `json:"-"`              // computer side agent
	BotMinDelay  int              `json:"bot_min_delay"`  // min ticks a bot waits
	BotMaxDelay  int              `json:"bot_max_delay"`  // max ticks a bot waits
	BotWaitUntil int64            `json:"bot_wait_until"` // tick when the bot may act

	botPending <-chan bot.Result
	botResult  *bot.Result
	botCancel  context.CancelFunc
	rng        *rand.Rand
}

// stopBot abandons any decision in flight.
func (ms *MatchState) stopBot() {
	if ms.botCancel != nil {
		ms.botCancel()
	}
	ms.botCancel = nil
	ms.botPending = nil
	ms.botResult = nil
	ms.BotWaitUntil = 0
}

func (ms *MatchState) botDelay() int {
	if ms.BotMaxDelay <= ms.BotMinDelay {
		return ms.BotMinDelay
	}
	return ms.BotMinDelay + ms.rng.Intn(ms.BotMaxDelay-ms.BotMinDelay+1)
}

func (ms *MatchState) labelState() string {
	switch {
	case ms.Round == nil:
		return "lobby"
	case ms.Round.Phase == domain.PhaseEnded:
		return "ended"
	default:
		return "playing"
	}
}

type matchHandler struct {
	tickets *app.TicketService
	cfg     *config.GameConfig
	log     *zap.Logger
	seed    int64 // zero seeds each match from the clock
}

func newMatchHandler(tickets *app.TicketService, cfg *config.GameConfig, log *zap.Logger) *matchHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &matchHandler{tickets: tickets, cfg: cfg, log: log}
}

// MatchInit is called when the match is created. params carries the user the
// match was created for and the requested bot level.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	humanID, _ := params["user_id"].(string)
	if humanID == "" {
		logger.Error("MatchInit: Missing user_id param.")
		return nil, 0, ""
	}

	levelName, _ := params["bot_level"].(string)
	if levelName == "" {
		levelName = mh.cfg.BotLevelName()
	}
	level, err := bot.ParseLevel(levelName)
	if err != nil {
		logger.Warn("MatchInit: %v, falling back to %s", err, bot.BotLevelSearch)
		level = bot.BotLevelSearch
	}

	seed := mh.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	identity := bot.IdentityFor(level)
	brain, err := bot.NewBrain(level, bot.Settings{
		Budget: mh.cfg.SearchBudget(),
		Seed:   rng.Int63(),
		Logger: mh.log.With(zap.String("match_id", matchID), zap.String("bot", identity.UserID)),
	})
	if err != nil {
		logger.Error("MatchInit: Failed to create bot brain: %v", err)
		return nil, 0, ""
	}

	minDelay, maxDelay := mh.cfg.BotDelayTicks()
	state := &MatchState{
		MatchID:     matchID,
		HumanID:     humanID,
		NextLeader:  domain.SideHuman,
		App:         app.NewService(rand.New(rand.NewSource(rng.Int63()))),
		Settle:      newSettleTracker(mh.cfg.SettleTimeoutOrDefault()),
		BotLevel:    level,
		Identity:    identity,
		Bot:         &bot.Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: brain},
		BotMinDelay: minDelay,
		BotMaxDelay: maxDelay,
		rng:         rng,
	}

	label, err := mh.label(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Debug("MatchInit: Match %s for %s against %s.", matchID, humanID, level)
	return state, mh.cfg.TickRateOrDefault(), label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if presence.GetUserId() != matchState.HumanID {
		return matchState, false, "match is reserved"
	}
	if matchState.Presence != nil && matchState.Presence.GetSessionId() != presence.GetSessionId() {
		return matchState, false, "already joined"
	}
	if err := mh.tickets.Verify(metadata[MetadataTicket], presence.GetUserId(), matchState.MatchID); err != nil {
		logger.Warn("MatchJoinAttempt: Rejected %s: %v", presence.GetUserId(), err)
		return matchState, false, "invalid ticket"
	}

	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() != matchState.HumanID {
			logger.Warn("MatchJoin: Ignoring unexpected user %s.", p.GetUserId())
			continue
		}
		matchState.Presence = p
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.sendSnapshot(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave ends the match once the human is gone; the computer never plays
// alone.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.HumanID {
			matchState.Presence = nil
			matchState.stopBot()
			logger.Info("MatchLeave: User %s left, terminating match.", p.GetUserId())
			return nil
		}
	}

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	matchState.Settle.advance(tick)

	for _, msg := range messages {
		if msg.GetUserId() != matchState.HumanID {
			logger.Warn("MatchLoop: Message from unexpected user %s.", msg.GetUserId())
			continue
		}
		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(matchState, dispatcher, logger)
		case OpPlayCard:
			mh.handlePlayCard(matchState, dispatcher, logger, msg)
		case OpExchangeTrump:
			mh.handleExchangeTrump(matchState, dispatcher, logger)
		case OpSwitchBlind:
			mh.handleSwitchBlind(matchState, dispatcher, logger, msg)
		case OpCardSettled:
			mh.handleCardSettled(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.advanceRound(matchState, dispatcher, logger)
	mh.processBot(ctx, matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) handleStartRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Round != nil && state.Round.Phase != domain.PhaseEnded {
		mh.sendError(state, dispatcher, logger, ErrCodeConflict, "round in progress")
		return
	}

	state.stopBot()
	state.Settle.reset()

	round, events, err := state.App.StartRound(state.NextLeader)
	if err != nil {
		logger.Error("StartRound: Failed to start round: %v", err)
		return
	}
	state.Round = round
	state.NextLeader = state.NextLeader.Other()
	state.Rounds++

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(state, dispatcher, logger, events)

	logger.Info("StartRound: Round %d (%s) started, %s leads.", state.Rounds, round.ID, round.Leader)
}

func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if !mh.requireRound(state, dispatcher, logger) {
		return
	}
	req, err := decodeRequest(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, ErrCodeBadRequest, err.Error())
		return
	}
	card, err := requestCard(req)
	if err != nil {
		mh.sendError(state, dispatcher, logger, ErrCodeBadRequest, err.Error())
		return
	}

	events, err := state.App.PlayCard(state.Round, domain.SideHuman, card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s failed to play %v: %v. Hand: %v", state.HumanID, card, err, state.Round.Hands[domain.SideHuman])
		mh.sendError(state, dispatcher, logger, errorCode(err), err.Error())
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleExchangeTrump(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !mh.requireRound(state, dispatcher, logger) {
		return
	}
	events, err := state.App.ExchangeTrump(state.Round, domain.SideHuman)
	if err != nil {
		logger.Warn("handleExchangeTrump: User %s: %v", state.HumanID, err)
		mh.sendError(state, dispatcher, logger, errorCode(err), err.Error())
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleSwitchBlind(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if !mh.requireRound(state, dispatcher, logger) {
		return
	}
	req, err := decodeRequest(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, ErrCodeBadRequest, err.Error())
		return
	}
	cards, err := requestCards(req)
	if err != nil {
		mh.sendError(state, dispatcher, logger, ErrCodeBadRequest, err.Error())
		return
	}

	events, err := state.App.SwitchBlind(state.Round, domain.SideHuman, cards)
	if err != nil {
		logger.Warn("handleSwitchBlind: User %s failed to switch %v: %v", state.HumanID, cards, err)
		mh.sendError(state, dispatcher, logger, errorCode(err), err.Error())
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleCardSettled(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	req, err := decodeRequest(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, ErrCodeBadRequest, err.Error())
		return
	}
	card, err := requestCard(req)
	if err != nil {
		mh.sendError(state, dispatcher, logger, ErrCodeBadRequest, err.Error())
		return
	}
	state.Settle.settle(card)
}

func (mh *matchHandler) requireRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) bool {
	if state.Round == nil {
		mh.sendError(state, dispatcher, logger, ErrCodeConflict, "no round in progress")
		return false
	}
	return true
}

// advanceRound completes a pending play once its card has settled.
func (mh *matchHandler) advanceRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	round := state.Round
	if round == nil || round.Phase != domain.PhaseTurn || round.Pending == nil {
		return
	}
	events, err := state.App.Advance(round, state.Settle)
	if err != nil {
		logger.Error("advanceRound: %v", err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

// processBot drives the computer side. The decision runs on a worker started
// as soon as the turn passes to the bot; the loop only polls its channel and
// applies the move once the configured delay has elapsed.
func (mh *matchHandler) processBot(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	round := state.Round
	if round == nil || round.Phase != domain.PhaseTurn || round.Turn != domain.SideCPU || round.Pending != nil {
		return
	}

	if state.botPending == nil && state.botResult == nil {
		workerCtx, cancel := context.WithCancel(ctx)
		state.botCancel = cancel
		state.botPending = state.Bot.Begin(workerCtx, state.App.View(round, domain.SideCPU))
		state.BotWaitUntil = state.Tick + int64(state.botDelay())
		logger.Debug("processBot: Bot %s will act at tick %d (current %d)", state.Bot.ID, state.BotWaitUntil, state.Tick)
	}

	if state.botResult == nil {
		select {
		case res, ok := <-state.botPending:
			if !ok {
				res = bot.Result{Err: errWorkerClosed}
			}
			state.botResult = &res
			state.botPending = nil
		default:
			return
		}
	}

	if state.Tick < state.BotWaitUntil {
		return
	}

	res := *state.botResult
	state.stopBot()
	mh.applyBotMove(state, dispatcher, logger, res)
}

func (mh *matchHandler) applyBotMove(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, res bot.Result) {
	round := state.Round

	var events []app.Event
	err := res.Err
	if err == nil {
		switch res.Move.Kind {
		case bot.MoveExchangeTrump:
			events, err = state.App.ExchangeTrump(round, domain.SideCPU)
		case bot.MoveSwitchBlind:
			events, err = state.App.SwitchBlind(round, domain.SideCPU, res.Move.Cards)
		default:
			events, err = state.App.PlayCard(round, domain.SideCPU, res.Move.Card)
		}
	}

	if err != nil {
		logger.Warn("processBot: Bot %s move %v failed: %v. Playing first legal card.", state.Bot.ID, res.Move.Kind, err)
		legal, lerr := state.App.LegalPlays(round, domain.SideCPU)
		if lerr != nil || len(legal) == 0 {
			logger.Error("processBot: No legal fallback for bot %s: %v", state.Bot.ID, lerr)
			return
		}
		events, err = state.App.PlayCard(round, domain.SideCPU, legal[0])
		if err != nil {
			logger.Error("processBot: Fallback play failed: %v", err)
			return
		}
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		if p, ok := ev.Payload.(app.CardPlayedPayload); ok {
			state.Settle.track(p.Card, state.Tick)
		}
		mh.broadcastEvent(state, dispatcher, logger, ev)
		if p, ok := ev.Payload.(app.RoundEndedPayload); ok {
			logger.Info("RoundEnded: Round %d scores %v (draw=%v).", state.Rounds, p.Scores, p.Draw)
			mh.updateLabel(state, dispatcher, logger)
		}
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, fields, err := eventPayload(ev)
	if err != nil {
		logger.Warn("broadcastEvent: %v", err)
		return
	}
	bytes, err := encodePayload(fields)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Targeted events for the computer side have no connected recipient and
	// must not fall back to a broadcast.
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		if state.Presence != nil && slices.Contains(ev.Recipients, domain.SideHuman) {
			recipients = append(recipients, state.Presence)
		}
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("broadcastEvent: %v: %v", ev.Kind, err)
	}
}

// sendSnapshot tells a (re)joining client who it plays against and, during a
// round, everything it may see.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Presence == nil {
		return
	}
	fields := map[string]interface{}{
		"match_id": state.MatchID,
		"rounds":   state.Rounds,
		"state":    state.labelState(),
		"bot": map[string]interface{}{
			"user_id":      state.Identity.UserID,
			"username":     state.Identity.Username,
			"display_name": state.Identity.DisplayName,
			"avatar_index": state.Identity.AvatarIndex,
			"level":        state.BotLevel.String(),
		},
	}
	if state.Round != nil {
		fields["turn"] = state.Round.Turn.String()
		fields["round"] = viewValue(state.App.View(state.Round, domain.SideHuman))
	}

	bytes, err := encodePayload(fields)
	if err != nil {
		logger.Error("sendSnapshot: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchSnapshot, bytes, []runtime.Presence{state.Presence}, nil, true); err != nil {
		logger.Error("sendSnapshot: %v", err)
	}
}

// sendError sends an OpError event to the human.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	if state.Presence == nil {
		logger.Warn("Cannot send error to %s: Presence not found", state.HumanID)
		return
	}
	bytes, err := encodePayload(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("Failed to marshal error event: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{state.Presence}, nil, true); err != nil {
		logger.Error("sendError: %v", err)
	}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrNotPlaying), errors.Is(err, app.ErrNotYourTurn), errors.Is(err, app.ErrPlayPending):
		return ErrCodeConflict
	case errors.Is(err, app.ErrExchangeNotAllowed), errors.Is(err, app.ErrBlindSwitchNotAllowed):
		return ErrCodeForbidden
	default:
		return ErrCodeBadRequest
	}
}

func (mh *matchHandler) label(state *MatchState) (string, error) {
	open := 0
	if state.Presence == nil {
		open = 1
	}
	b, err := encodePayload(map[string]interface{}{
		"game":      "jass",
		"state":     state.labelState(),
		"open":      open,
		"bot_level": state.BotLevel.String(),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := mh.label(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		matchState.stopBot()
	}
	logger.Debug("MatchTerminate: Match terminated (grace %ds)", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
