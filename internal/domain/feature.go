package domain

type FeatureCard struct {
	Title       string
	Description string
	LinkText    string
	Link        string
}

func DefaultFeatureCards() []FeatureCard {
	return []FeatureCard{
		{
			Title:       "Payment Stream",
			Description: "Set up automated crypto payments once, run forever. Handle subscriptions, salaries, and recurring transfers automatically on Stellar.",
			LinkText:    "Create Stream",
			Link:        "streams stream add",
		},
	}
}
