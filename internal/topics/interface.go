package topics

//go:generate mockgen -package=mocks -destination=mocks/mock_provider.go github.com/imposterparty/imposterd/internal/topics Provider

import "context"

// TopicPair is the pair of related topics for one round: the common one
// shown to ordinary players and the variant shown to the imposter
type TopicPair struct {
	PlayerTopic   string
	ImposterTopic string
}

// GenerateTopicsInput contains parameters for generating a topic pair
type GenerateTopicsInput struct {
	// Category drives what kind of topics are produced
	Category string

	// PreviousPair, when set, asks the provider to avoid repeating the
	// previous round's exact pair
	PreviousPair *TopicPair
}

// Provider produces topic pairs for a category
type Provider interface {
	GenerateTopics(ctx context.Context, input *GenerateTopicsInput) (*TopicPair, error)
}
