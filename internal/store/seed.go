package store

import "context"

// defaultStrategies is the starter set of evidence-based coping strategies.
// The "general" category is the fallback when no category matches an emotion.
var defaultStrategies = []AddStrategyParams{
	{
		Name:        "Box Breathing",
		Category:    "anxious",
		Description: "A slow breathing pattern that calms the nervous system when you feel anxious or overwhelmed.",
		Steps: []string{
			"Breathe in through your nose for 4 counts",
			"Hold your breath for 4 counts",
			"Breathe out through your mouth for 4 counts",
			"Hold for 4 counts, then repeat for 2-3 minutes",
		},
		EvidenceLink: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5455070/",
	},
	{
		Name:        "5-4-3-2-1 Grounding",
		Category:    "anxious",
		Description: "A sensory grounding exercise that interrupts spiraling thoughts by anchoring attention in the present.",
		Steps: []string{
			"Name 5 things you can see",
			"Name 4 things you can touch",
			"Name 3 things you can hear",
			"Name 2 things you can smell",
			"Name 1 thing you can taste",
		},
	},
	{
		Name:        "Behavioral Activation",
		Category:    "sad",
		Description: "Doing one small, valued activity counteracts low mood even when motivation is absent.",
		Steps: []string{
			"Pick one small activity you used to enjoy",
			"Schedule it for a specific time today",
			"Do it even if you don't feel like it",
			"Notice how your mood shifts afterward",
		},
		EvidenceLink: "https://www.apa.org/ptsd-guideline/patients-and-families/behavioral-activation",
	},
	{
		Name:        "Thought Journaling",
		Category:    "general",
		Description: "Writing thoughts down creates distance from them and makes patterns visible.",
		Steps: []string{
			"Write down the situation that triggered the feeling",
			"Write the automatic thought that came up",
			"Ask: what evidence supports or contradicts it?",
			"Write a more balanced alternative thought",
		},
	},
	{
		Name:        "Progressive Muscle Relaxation",
		Category:    "general",
		Description: "Tensing and releasing muscle groups in sequence releases physical stress.",
		Steps: []string{
			"Find a quiet place to sit or lie down",
			"Tense your feet for 5 seconds, then release",
			"Work upward through each muscle group",
			"Finish with slow breaths and notice the difference",
		},
	},
}

// SeedDefaultStrategies inserts the starter coping strategies. It is a no-op
// when strategies already exist, so it is safe to run on every startup.
func (s *SQLiteStore) SeedDefaultStrategies(ctx context.Context) (int, error) {
	existing, err := s.GetAllStrategies(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, p := range defaultStrategies {
		if _, err := s.AddStrategy(ctx, p); err != nil {
			return 0, err
		}
	}
	return len(defaultStrategies), nil
}
