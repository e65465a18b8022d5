// Package models discovers which OpenAI models an API key can use for
// each stage of the card pipeline: chat models for translation, word
// analysis and grammar notes, and speech models for sentence audio.
package models
