package suggest

import (
	"sort"

	"github.com/julianstephens/moodlit/internal/models"
)

// Category pairs a mood key with its tip pool. Declaration order matters:
// substring matching takes the first category that matches.
type Category struct {
	Mood models.MoodCategory
	Tips []models.Tip
}

var categories = []Category{
	{
		Mood: models.MoodTired,
		Tips: []models.Tip{
			{
				Activity:    "Take a 10-minute power nap or rest with your eyes closed",
				Explanation: "Short rest periods can help restore mental clarity without entering deep sleep cycles that might leave you groggier.",
				Duration:    "10 minutes",
			},
			{
				Activity:    "Try the 4-7-8 breathing technique",
				Explanation: "Inhale for 4 counts, hold for 7, exhale for 8. This activates your parasympathetic nervous system to promote relaxation and energy restoration.",
				Duration:    "5 minutes",
			},
			{
				Activity:    "Step outside for fresh air and gentle movement",
				Explanation: "Natural light and movement help regulate circadian rhythms and boost alertness naturally.",
				Duration:    "15 minutes",
			},
			{
				Activity:    "Hydrate and have a healthy snack",
				Explanation: "Dehydration and low blood sugar are common causes of fatigue. Try water with lemon and a piece of fruit or nuts.",
				Duration:    "5 minutes",
			},
		},
	},
	{
		Mood: models.MoodAnxious,
		Tips: []models.Tip{
			{
				Activity:    "Practice the 5-4-3-2-1 grounding technique",
				Explanation: "Notice 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, 1 you can taste. This brings you back to the present moment.",
				Duration:    "5 minutes",
			},
			{
				Activity:    "Try progressive muscle relaxation",
				Explanation: "Tense and release each muscle group starting from your toes up to your head. This helps release physical tension that accompanies anxiety.",
				Duration:    "10 minutes",
			},
			{
				Activity:    "Write down your worries in a journal",
				Explanation: "Externalize anxious thoughts by writing them down. This helps create distance from the worry and often makes solutions clearer.",
				Duration:    "10 minutes",
			},
			{
				Activity:    "Practice box breathing",
				Explanation: "Breathe in for 4 counts, hold for 4, out for 4, hold for 4. Repeat. This regulates your nervous system and reduces anxiety symptoms.",
				Duration:    "5 minutes",
			},
		},
	},
	{
		Mood: models.MoodHappy,
		Tips: []models.Tip{
			{
				Activity:    "Savor this positive moment mindfully",
				Explanation: "Take time to fully experience and appreciate your happiness. Notice how it feels in your body and what thoughts accompany it.",
				Duration:    "5 minutes",
			},
			{
				Activity:    "Share your joy with someone you care about",
				Explanation: "Positive emotions are amplified when shared. Reach out to a friend or family member and spread the good vibes.",
				Duration:    "10 minutes",
			},
			{
				Activity:    "Engage in a creative activity",
				Explanation: "Channel your positive energy into something creative - draw, write, dance, or play music. Happiness often fuels creativity.",
				Duration:    "20 minutes",
			},
			{
				Activity:    "Practice gratitude meditation",
				Explanation: "Reflect on three things you're grateful for right now. This helps consolidate positive emotions and builds resilience.",
				Duration:    "5 minutes",
			},
		},
	},
	{
		Mood: models.MoodStressed,
		Tips: []models.Tip{
			{
				Activity:    "Try the STOP technique",
				Explanation: "Stop what you're doing, Take a breath, Observe your thoughts and feelings, Proceed with intention. This creates space between stress and reaction.",
				Duration:    "2 minutes",
			},
			{
				Activity:    "Do some gentle stretching or yoga",
				Explanation: "Physical movement helps metabolize stress hormones and releases tension. Focus on neck, shoulders, and back stretches.",
				Duration:    "10 minutes",
			},
			{
				Activity:    "Prioritize your tasks using the 'urgent vs important' matrix",
				Explanation: "Write down everything on your mind and categorize by urgency and importance. This brings clarity and control to overwhelming situations.",
				Duration:    "15 minutes",
			},
			{
				Activity:    "Listen to calming music or nature sounds",
				Explanation: "Certain frequencies and rhythms can activate your relaxation response and lower cortisol levels naturally.",
				Duration:    "10 minutes",
			},
		},
	},
	{
		Mood: models.MoodEnergetic,
		Tips: []models.Tip{
			{
				Activity:    "Channel your energy into a workout or brisk walk",
				Explanation: "Physical activity helps regulate energy levels and releases endorphins that sustain positive mood.",
				Duration:    "30 minutes",
			},
			{
				Activity:    "Tackle a challenging project or learn something new",
				Explanation: "High energy states are perfect for focused work or skill development. Use this momentum for growth activities.",
				Duration:    "45 minutes",
			},
			{
				Activity:    "Organize or clean your space",
				Explanation: "Transform your energetic state into productive action that creates a sense of accomplishment and improved environment.",
				Duration:    "20 minutes",
			},
			{
				Activity:    "Connect with friends or engage socially",
				Explanation: "High energy is contagious and perfect for meaningful social connections. Reach out and strengthen relationships.",
				Duration:    "30 minutes",
			},
		},
	},
	{
		Mood: models.MoodPeaceful,
		Tips: []models.Tip{
			{
				Activity:    "Practice mindful meditation",
				Explanation: "Sit quietly and focus on your breath. When thoughts arise, acknowledge them gently and return to breathing. This deepens your sense of peace.",
				Duration:    "15 minutes",
			},
			{
				Activity:    "Enjoy some gentle reading or journaling",
				Explanation: "Peaceful states are perfect for reflective activities. Read something inspiring or write about your thoughts and feelings.",
				Duration:    "20 minutes",
			},
			{
				Activity:    "Spend time in nature",
				Explanation: "Natural environments enhance feelings of peace and connection. Sit outside, tend to plants, or simply observe the sky.",
				Duration:    "25 minutes",
			},
			{
				Activity:    "Practice loving-kindness meditation",
				Explanation: "Send good wishes to yourself, loved ones, and even difficult people. This expands your sense of peace and compassion.",
				Duration:    "10 minutes",
			},
		},
	},
}

// genericTips is the pool for moods nothing else matched
var genericTips = []models.Tip{
	{
		Activity:    "Take three deep, conscious breaths",
		Explanation: "Conscious breathing is a universal tool that helps regulate emotions and brings you back to the present moment.",
		Duration:    "2 minutes",
	},
	{
		Activity:    "Write about your current feelings",
		Explanation: "Journaling helps process emotions and often provides clarity about what you're experiencing and what you might need.",
		Duration:    "10 minutes",
	},
	{
		Activity:    "Do a quick body scan meditation",
		Explanation: "Start from your toes and work up to your head, noticing any tension or sensations. This builds self-awareness and promotes relaxation.",
		Duration:    "8 minutes",
	},
	{
		Activity:    "Step away from screens and technology",
		Explanation: "Digital breaks help reset your nervous system and create space for natural emotional regulation.",
		Duration:    "15 minutes",
	},
}

// synonyms redirects common mood words to a category. Exact keys only.
var synonyms = map[string]models.MoodCategory{
	"overwhelmed": models.MoodStressed,
	"worried":     models.MoodAnxious,
	"nervous":     models.MoodAnxious,
	"excited":     models.MoodEnergetic,
	"joyful":      models.MoodHappy,
	"content":     models.MoodPeaceful,
	"calm":        models.MoodPeaceful,
	"exhausted":   models.MoodTired,
	"sleepy":      models.MoodTired,
	"frustrated":  models.MoodStressed,
	"angry":       models.MoodStressed,
	"sad":         models.MoodAnxious,
	"lonely":      models.MoodAnxious,
}

// Synonym is one entry of the synonym table
type Synonym struct {
	Word string
	Mood models.MoodCategory
}

// Moods returns the mood categories in declaration order
func Moods() []models.MoodCategory {
	moods := make([]models.MoodCategory, len(categories))
	for i, c := range categories {
		moods[i] = c.Mood
	}
	return moods
}

// Synonyms returns the synonym table sorted by word
func Synonyms() []Synonym {
	out := make([]Synonym, 0, len(synonyms))
	for word, mood := range synonyms {
		out = append(out, Synonym{Word: word, Mood: mood})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// TipsFor returns a copy of the tip pool for a category, or nil if unknown
func TipsFor(mood models.MoodCategory) []models.Tip {
	if c, ok := lookup(mood); ok {
		return append([]models.Tip(nil), c.Tips...)
	}
	return nil
}

// GenericTips returns a copy of the fallback pool
func GenericTips() []models.Tip {
	return append([]models.Tip(nil), genericTips...)
}

func lookup(mood models.MoodCategory) (Category, bool) {
	for _, c := range categories {
		if c.Mood == mood {
			return c, true
		}
	}
	return Category{}, false
}
