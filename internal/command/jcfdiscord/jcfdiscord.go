// Package jcfdiscord holds the guild-scoped commands of the JCF Discord server.
package jcfdiscord

const group = "jcfdiscord"
