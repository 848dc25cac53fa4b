package nakama

import (
	"errors"
	"fmt"

	"jass/internal/app"
	"jass/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrBadPayload = errors.New("malformed payload")
	ErrBadCard    = errors.New("malformed card")
)

// decodeRequest accepts either protojson text or binary protobuf encoding of
// a google.protobuf.Struct. An empty payload decodes to an empty struct.
func decodeRequest(data []byte) (*structpb.Struct, error) {
	req := &structpb.Struct{}
	if len(data) == 0 {
		return req, nil
	}
	var err error
	if data[0] == '{' {
		err = protojson.Unmarshal(data, req)
	} else {
		err = proto.Unmarshal(data, req)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return req, nil
}

// encodePayload renders fields as protojson so web clients can read it
// without generated code.
func encodePayload(fields map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

func cardValue(c domain.Card) map[string]interface{} {
	return map[string]interface{}{
		"suit": c.Suit.String(),
		"rank": int(c.Rank),
	}
}

func cardsValue(cards []domain.Card) []interface{} {
	out := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardValue(c))
	}
	return out
}

func scoresValue(scores [2]int) []interface{} {
	return []interface{}{scores[domain.SideHuman], scores[domain.SideCPU]}
}

func parseSuit(name string) (domain.Suit, bool) {
	for s := domain.Heart; s <= domain.Diamond; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// cardFromValue reads {"suit": "club", "rank": 3}.
func cardFromValue(v *structpb.Value) (domain.Card, error) {
	fields := v.GetStructValue().GetFields()
	if fields == nil {
		return domain.Card{}, ErrBadCard
	}
	suit, ok := parseSuit(fields["suit"].GetStringValue())
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: suit %q", ErrBadCard, fields["suit"].GetStringValue())
	}
	rankValue, ok := fields["rank"]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: missing rank", ErrBadCard)
	}
	n := rankValue.GetNumberValue()
	if n != float64(int(n)) {
		return domain.Card{}, fmt.Errorf("%w: rank %v", ErrBadCard, n)
	}
	card := domain.Card{Suit: suit, Rank: domain.Rank(int(n))}
	if int(n) < int(domain.Six) || int(n) > int(domain.Ace) || !card.Valid() {
		return domain.Card{}, fmt.Errorf("%w: rank %v", ErrBadCard, n)
	}
	return card, nil
}

func requestCard(req *structpb.Struct) (domain.Card, error) {
	v, ok := req.GetFields()["card"]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: missing card", ErrBadPayload)
	}
	return cardFromValue(v)
}

func requestCards(req *structpb.Struct) ([]domain.Card, error) {
	list := req.GetFields()["cards"].GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: missing cards", ErrBadPayload)
	}
	cards := make([]domain.Card, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		c, err := cardFromValue(v)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// eventPayload maps a round event to its op code and wire fields.
func eventPayload(ev app.Event) (int64, map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.RoundStartedPayload:
		return OpRoundStarted, map[string]interface{}{
			"round_id": p.RoundID,
			"leader":   p.Leader.String(),
		}, nil
	case app.ZoneChangedPayload:
		return OpZoneChanged, map[string]interface{}{
			"side":  p.Side.String(),
			"zone":  p.Zone.String(),
			"cards": cardsValue(p.Cards),
		}, nil
	case app.TrumpChangedPayload:
		return OpTrumpChanged, map[string]interface{}{
			"card": cardValue(p.Card),
		}, nil
	case app.CardPlayedPayload:
		return OpCardPlayed, map[string]interface{}{
			"side": p.Side.String(),
			"card": cardValue(p.Card),
			"lead": p.Lead,
		}, nil
	case app.TurnChangedPayload:
		return OpTurnChanged, map[string]interface{}{
			"side": p.Side.String(),
		}, nil
	case app.TrickResolvedPayload:
		return OpTrickResolved, map[string]interface{}{
			"trick":  p.Trick,
			"winner": p.Winner.String(),
			"points": p.Points,
			"scores": scoresValue(p.Scores),
		}, nil
	case app.TrumpExchangedPayload:
		return OpTrumpExchanged, map[string]interface{}{
			"side":     p.Side.String(),
			"taken":    cardValue(p.Taken),
			"returned": cardValue(p.Returned),
		}, nil
	case app.BlindSwitchedPayload:
		return OpBlindSwitched, map[string]interface{}{
			"side": p.Side.String(),
		}, nil
	case app.RoundEndedPayload:
		fields := map[string]interface{}{
			"scores": scoresValue(p.Scores),
			"draw":   p.Draw,
		}
		if !p.Draw {
			fields["winner"] = p.Winner.String()
		}
		return OpRoundEnded, fields, nil
	default:
		return 0, nil, fmt.Errorf("unknown event %v (%T)", ev.Kind, ev.Payload)
	}
}

// viewValue renders what the human may see of a round.
func viewValue(view domain.SideView) map[string]interface{} {
	fields := map[string]interface{}{
		"trump_card":       cardValue(view.TrumpCard),
		"hand":             cardsValue(view.Hand),
		"blind":            cardsValue(view.Blind),
		"played_human":     cardsValue(view.Played[domain.SideHuman]),
		"played_cpu":       cardsValue(view.Played[domain.SideCPU]),
		"disclosed":        cardsValue(view.Disclosed),
		"scores":           scoresValue(view.Scores),
		"leader":           view.Leader.String(),
		"tricks":           view.Tricks,
		"stock_size":       view.StockSize,
		"can_exchange":     view.CanExchange,
		"can_switch_blind": view.CanSwitchBlind,
	}
	if view.LeadCard != nil {
		fields["lead_card"] = cardValue(*view.LeadCard)
	}
	return fields
}
