package notion

import (
	"strings"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/interfaces"
	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/jomei/notionapi"
)

// reportBlocks renders the page body: a team line followed by one
// section per intervention with its text and media. Only media that
// has been uploaded to public storage is embedded; chat-backend URLs
// are private and never leak into the page.
func reportBlocks(report *model.Report, interventions []*model.Intervention, images interfaces.PublishedImages) []notionapi.Block {
	var blocks []notionapi.Block

	if len(report.Team) > 0 {
		names := make([]string, 0, len(report.Team))
		for _, m := range report.Team {
			names = append(names, m.Name)
		}
		blocks = append(blocks, paragraphBlock("Intervenants : "+joinNames(names)))
	}

	for _, iv := range interventions {
		blocks = append(blocks, dividerBlock())
		blocks = append(blocks, interventionBlocks(iv, images)...)
	}

	return blocks
}

func interventionBlocks(iv *model.Intervention, images interfaces.PublishedImages) []notionapi.Block {
	title := iv.Title
	if title == "" {
		title = "Intervention du " + iv.DateLabel()
	}

	description := iv.EnhancedText
	if description == "" {
		description = iv.Text
	}

	blocks := []notionapi.Block{headingBlock(title + " — " + iv.DateLabel())}
	if description != "" {
		blocks = append(blocks, paragraphBlock(description))
	}

	blocks = append(blocks, mediaBlocks(iv.Buckets[types.SectionRegular], images)...)

	if iv.HasBeforeAfter {
		if before := mediaBlocks(iv.Buckets[types.SectionBefore], images); len(before) > 0 {
			blocks = append(blocks, subHeadingBlock("Avant"))
			blocks = append(blocks, before...)
		}
		if after := mediaBlocks(iv.Buckets[types.SectionAfter], images); len(after) > 0 {
			blocks = append(blocks, subHeadingBlock("Après"))
			blocks = append(blocks, after...)
		}
	}

	return blocks
}

// mediaBlocks renders uploaded attachments: images as image blocks,
// other media as a linked paragraph. Attachments without an uploaded
// URL are skipped.
func mediaBlocks(attachments []chat.Attachment, images interfaces.PublishedImages) []notionapi.Block {
	var blocks []notionapi.Block
	for _, att := range attachments {
		url, ok := images[att.ID()]
		if !ok || url == "" {
			continue
		}
		if strings.HasPrefix(att.Mimetype(), "image/") {
			blocks = append(blocks, imageBlock(url))
		} else {
			blocks = append(blocks, linkBlock(att.Name(), url))
		}
	}
	return blocks
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: s}},
	}
}

func titleProperty(s string) *notionapi.TitleProperty {
	return &notionapi.TitleProperty{Title: richText(s)}
}

func richTextProperty(s string) *notionapi.RichTextProperty {
	return &notionapi.RichTextProperty{RichText: richText(s)}
}

func dateProperty(t time.Time) *notionapi.DateProperty {
	d := notionapi.Date(t)
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

func dateRangeProperty(start, end time.Time) *notionapi.DateProperty {
	s := notionapi.Date(start)
	e := notionapi.Date(end)
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &s, End: &e}}
}

func headingBlock(s string) notionapi.Block {
	return &notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading2,
		},
		Heading2: notionapi.Heading{RichText: richText(s)},
	}
}

func subHeadingBlock(s string) notionapi.Block {
	return &notionapi.Heading3Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading3,
		},
		Heading3: notionapi.Heading{RichText: richText(s)},
	}
}

func paragraphBlock(s string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{RichText: richText(s)},
	}
}

func linkBlock(name, url string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: name, Link: &notionapi.Link{Url: url}}},
			},
		},
	}
}

func imageBlock(url string) notionapi.Block {
	return &notionapi.ImageBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeImage,
		},
		Image: notionapi.Image{
			Type:     notionapi.FileTypeExternal,
			External: &notionapi.FileObject{URL: url},
		},
	}
}

func dividerBlock() notionapi.Block {
	return &notionapi.DividerBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeDivider,
		},
	}
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
