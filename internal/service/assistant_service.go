package service

import (
	"strings"

	"mindcare-backend/internal/domain/entity"
)

// Reply categories
const (
	TopicCrisis     = "crisis"
	TopicGreeting   = "greeting"
	TopicAnxiety    = "anxiety"
	TopicDepression = "depression"
	TopicSleep      = "sleep"
	TopicStress     = "stress"
	TopicGeneral    = "general"
)

// AssistantReply is a canned supportive response with follow-up suggestions
type AssistantReply struct {
	Topic     string
	Text      string
	Options   []string
	RiskLevel entity.RiskLevel
}

type topicRule struct {
	topic    string
	keywords []string
	risk     entity.RiskLevel
}

// Crisis is checked first; greetings only match whole words so "this" is not read as "hi".
var topicRules = []topicRule{
	{TopicCrisis, []string{"suicide", "kill myself", "end it all", "self harm", "self-harm"}, entity.RiskLevelHigh},
	{TopicAnxiety, []string{"anxiety", "anxious", "panic", "worried"}, entity.RiskLevelMedium},
	{TopicDepression, []string{"depress", "sad", "down", "hopeless"}, entity.RiskLevelMedium},
	{TopicSleep, []string{"sleep", "insomnia", "tired", "rest"}, entity.RiskLevelLow},
	{TopicStress, []string{"stress", "overwhelm", "pressure", "too much"}, entity.RiskLevelLow},
}

var greetingWords = map[string]struct{}{"hi": {}, "hello": {}, "hey": {}}

var assistantReplies = map[string]AssistantReply{
	TopicCrisis: {
		Text: "I hear that you're going through a really difficult time. Your safety and well-being are the top priority right now.",
		Options: []string{
			"Would you like the number for a crisis helpline?",
			"Let's focus on immediate coping strategies",
			"Have you talked to a mental health professional?",
			"What support do you have available right now?",
		},
	},
	TopicGreeting: {
		Text: "Hello! I'm your mental health support companion. I'm here to listen and support you in a safe, confidential space.",
		Options: []string{
			"I'd like to discuss my feelings",
			"I need help with stress",
			"I'm having trouble sleeping",
			"I'm feeling anxious",
		},
	},
	TopicAnxiety: {
		Text: "I understand that anxiety can be challenging. Let's explore some ways to help you feel more at ease.",
		Options: []string{
			"Tell me about what triggers your anxiety",
			"Would you like to try a breathing exercise?",
			"Let's discuss coping strategies",
			"How long have you been feeling this way?",
		},
	},
	TopicDepression: {
		Text: "Thank you for sharing. It takes courage to talk about these feelings. I'm here to listen and support you.",
		Options: []string{
			"Would you like to talk about what you're feeling?",
			"Let's explore activities that might help",
			"Have you considered professional support?",
			"What helps you feel better usually?",
		},
	},
	TopicSleep: {
		Text: "Sleep difficulties can really affect our well-being. Let's work together to improve your sleep quality.",
		Options: []string{
			"Would you like some relaxation techniques?",
			"Let's discuss your bedtime routine",
			"What keeps you awake at night?",
			"Have you tried sleep meditation?",
		},
	},
	TopicStress: {
		Text: "I hear that you're feeling stressed. Let's break this down together and find ways to manage it.",
		Options: []string{
			"What's causing you the most stress right now?",
			"Would you like to try a quick stress-relief exercise?",
			"Let's create a stress management plan",
			"How does this stress affect your daily life?",
		},
	},
	TopicGeneral: {
		Text: "I'm here to support you in whatever you'd like to discuss. Your well-being is important.",
		Options: []string{
			"What's on your mind today?",
			"Would you like to explore specific concerns?",
			"How are you feeling right now?",
			"Let's talk about what brought you here",
		},
	},
}

// AssistantService answers chat messages with rule-based supportive replies
type AssistantService struct{}

func NewAssistantService() *AssistantService {
	return &AssistantService{}
}

// Greeting is the opening message of a new session
func (s *AssistantService) Greeting() AssistantReply {
	return s.reply(TopicGreeting, entity.RiskLevelLow)
}

func (s *AssistantService) Respond(text string) AssistantReply {
	lower := strings.ToLower(strings.TrimSpace(text))

	if containsAny(lower, topicRules[0].keywords) {
		return s.reply(TopicCrisis, entity.RiskLevelHigh)
	}
	if len(lower) < 10 || hasGreeting(lower) {
		return s.reply(TopicGreeting, entity.RiskLevelLow)
	}
	for _, rule := range topicRules[1:] {
		if containsAny(lower, rule.keywords) {
			return s.reply(rule.topic, rule.risk)
		}
	}
	return s.reply(TopicGeneral, entity.RiskLevelLow)
}

func (s *AssistantService) reply(topic string, risk entity.RiskLevel) AssistantReply {
	r := assistantReplies[topic]
	return AssistantReply{
		Topic:     topic,
		Text:      r.Text,
		Options:   append([]string(nil), r.Options...),
		RiskLevel: risk,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func hasGreeting(s string) bool {
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		if _, ok := greetingWords[word]; ok {
			return true
		}
	}
	return false
}
