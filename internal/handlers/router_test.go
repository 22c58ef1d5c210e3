package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntentStrictMode(t *testing.T) {
	assert.Equal(t, IntentStrictOn, ClassifyIntent("strict on"))
	assert.Equal(t, IntentStrictOn, ClassifyIntent("enable strict mode"))
	assert.Equal(t, IntentStrictOn, ClassifyIntent("start strict please"))
	assert.Equal(t, IntentStrictOff, ClassifyIntent("strict off"))
	assert.Equal(t, IntentStrictOff, ClassifyIntent("disable strict mode"))
	assert.Equal(t, IntentStrictOff, ClassifyIntent("remove strict"))
}

func TestClassifyIntentStrictWinsOverGreeting(t *testing.T) {
	// "start" alone is a greeting, but with "strict" it is a mode command
	assert.Equal(t, IntentGreeting, ClassifyIntent("start"))
	assert.Equal(t, IntentStrictOn, ClassifyIntent("start strict"))
}

func TestClassifyIntentGreetings(t *testing.T) {
	assert.Equal(t, IntentGreeting, ClassifyIntent("hi"))
	assert.Equal(t, IntentGreeting, ClassifyIntent("  Hello "))
	assert.Equal(t, IntentGreeting, ClassifyIntent("HEY"))

	// greetings must be the whole message
	assert.Equal(t, IntentAI, ClassifyIntent("hi, I spent 200 on chai"))
}

func TestClassifyIntentForecast(t *testing.T) {
	assert.Equal(t, IntentForecast, ClassifyIntent("impact 2000"))
	assert.Equal(t, IntentForecast, ClassifyIntent("plan save 500 per week"))
	assert.Equal(t, IntentForecast, ClassifyIntent("save more"))
}

func TestClassifyIntentHealth(t *testing.T) {
	assert.Equal(t, IntentHealth, ClassifyIntent("health"))
	assert.Equal(t, IntentHealth, ClassifyIntent("score"))
	assert.Equal(t, IntentHealth, ClassifyIntent("how is my financial health?"))
}

func TestClassifyIntentDefaultsToAI(t *testing.T) {
	assert.Equal(t, IntentAI, ClassifyIntent("spent 250 on zomato"))
	assert.Equal(t, IntentAI, ClassifyIntent("my salary is 60000"))
	assert.Equal(t, IntentAI, ClassifyIntent("what is an emergency fund"))
}
