// Package alert posts operational notifications to a discord channel: sale
// announcements when an auction closes sold, and pages for ledger invariant
// violations that need a human.
package alert

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/metrics"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/auction"
	"github.com/motorline/goapi/domain/bid"
)

// Service sends out-of-band notifications. Implementations must be safe to
// call from request handlers and background workers concurrently.
type Service interface {
	// NotifySold announces a closed auction with a winning bid
	NotifySold(c ctx.Ctx, a *auction.Auction, winning *bid.Bid) error

	// NotifyInvariantViolation pages about a detected ledger inconsistency
	NotifyInvariantViolation(c ctx.Ctx, auctionId domain.AuctionId, detail string) error
}

type Config struct {
	DiscordBotKey    string
	DiscordChannelId string
	SiteUrl          string
}

type impl struct {
	config  Config
	discord *discordgo.Session
	met     metrics.Service
}

// New connects the discord bot session. Panics when the bot key is
// malformed, matching how the rest of the app treats broken boot config.
func New(config Config) Service {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", config.DiscordBotKey))
	if err != nil {
		panic("failed to connect to discord")
	}
	return &impl{
		config:  config,
		discord: discord,
		met:     metrics.New("alert"),
	}
}

func (im *impl) NotifySold(c ctx.Ctx, a *auction.Auction, winning *bid.Bid) error {
	defer im.met.BumpTime("time", "func", "notifySold").End()

	msg := &discordgo.MessageEmbed{
		Title:       "Vehicle sold!",
		Description: fmt.Sprintf("%s/auctions/%s", im.config.SiteUrl, a.Id),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Auction", Value: string(a.Id)},
			{Name: "Vehicle", Value: string(a.VehicleId)},
			{Name: "Winning bid", Value: winning.Amount},
			{Name: "Bidder", Value: string(winning.BidderId)},
		},
	}

	if _, err := im.discord.ChannelMessageSendEmbed(im.config.DiscordChannelId, msg); err != nil {
		im.met.BumpSum("err", 1, "func", "notifySold")
		c.WithField("err", err).Error("discord send failed")
		return err
	}
	return nil
}

func (im *impl) NotifyInvariantViolation(c ctx.Ctx, auctionId domain.AuctionId, detail string) error {
	defer im.met.BumpTime("time", "func", "notifyInvariantViolation").End()
	im.met.BumpSum("invariantViolation", 1)

	msg := &discordgo.MessageEmbed{
		Title:       "Ledger invariant violation",
		Description: detail,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Auction", Value: string(auctionId)},
		},
	}

	if _, err := im.discord.ChannelMessageSendEmbed(im.config.DiscordChannelId, msg); err != nil {
		im.met.BumpSum("err", 1, "func", "notifyInvariantViolation")
		c.WithField("err", err).Error("discord send failed")
		return err
	}
	return nil
}
