package export

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"cueline/internal/timecode"
	"cueline/internal/timeline"
)

// XMLOptions configures the FCP7 sequence writer.
type XMLOptions struct {
	ProjectName string
	FrameRate   float64
	Timebase    int
	NTSC        bool
	SampleRate  int
	AudioDir    string
}

type xmlRate struct {
	Timebase int    `xml:"timebase"`
	NTSC     string `xml:"ntsc"`
}

type xmlSampleCharacteristics struct {
	SampleRate int `xml:"samplerate"`
	SampleSize int `xml:"samplesize"`
}

type xmlFileAudio struct {
	ChannelCount          int                      `xml:"channelcount"`
	SampleCharacteristics xmlSampleCharacteristics `xml:"samplecharacteristics"`
}

type xmlFileMedia struct {
	Audio xmlFileAudio `xml:"audio"`
}

type xmlFile struct {
	ID      string       `xml:"id,attr"`
	Name    string       `xml:"name"`
	PathURL string       `xml:"pathurl"`
	Rate    xmlRate      `xml:"rate"`
	Media   xmlFileMedia `xml:"media"`
}

type xmlSourceTrack struct {
	MediaType  string `xml:"mediatype"`
	TrackIndex int    `xml:"trackindex"`
}

type xmlClipItem struct {
	ID          string         `xml:"id,attr"`
	Name        string         `xml:"name"`
	Enabled     string         `xml:"enabled"`
	Duration    int            `xml:"duration"`
	Rate        xmlRate        `xml:"rate"`
	Start       int            `xml:"start"`
	End         int            `xml:"end"`
	In          int            `xml:"in"`
	Out         int            `xml:"out"`
	File        xmlFile        `xml:"file"`
	SourceTrack xmlSourceTrack `xml:"sourcetrack"`
}

type xmlTrack struct {
	ClipItems []xmlClipItem `xml:"clipitem"`
}

type xmlAudio struct {
	Tracks []xmlTrack `xml:"track"`
}

type xmlVideo struct {
	Format struct{} `xml:"format"`
}

type xmlMedia struct {
	Video xmlVideo `xml:"video"`
	Audio xmlAudio `xml:"audio"`
}

type xmlSequence struct {
	UUID     string   `xml:"uuid"`
	Duration int      `xml:"duration"`
	Name     string   `xml:"name"`
	Rate     xmlRate  `xml:"rate"`
	Media    xmlMedia `xml:"media"`
}

type xmlXMEML struct {
	XMLName  xml.Name    `xml:"xmeml"`
	Version  string      `xml:"version,attr"`
	Sequence xmlSequence `xml:"sequence"`
}

func boolTag(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// BuildFCP7 assembles the FCP7 sequence document: one audio track carrying
// every segment with frame-accurate placement and source in/out offsets.
func BuildFCP7(segments []timeline.Segment, opts XMLOptions) xmlXMEML {
	seqRate := xmlRate{Timebase: opts.Timebase, NTSC: boolTag(opts.NTSC)}
	name := opts.ProjectName + "_timeline"

	clips := make([]xmlClipItem, 0, len(segments))
	for _, seg := range segments {
		startFrames := timecode.SecondsToFrames(seg.Start, opts.FrameRate)
		endFrames := timecode.SecondsToFrames(seg.End, opts.FrameRate)
		inFrames := timecode.SecondsToFrames(seg.AudioIn, opts.FrameRate)

		clips = append(clips, xmlClipItem{
			ID:       fmt.Sprintf("clipitem-%d", seg.Index),
			Name:     seg.Filename,
			Enabled:  "TRUE",
			Duration: endFrames - startFrames,
			Rate:     seqRate,
			Start:    startFrames,
			End:      endFrames,
			In:       inFrames,
			Out:      inFrames + (endFrames - startFrames),
			File: xmlFile{
				ID:      fmt.Sprintf("file-%d", seg.Index),
				Name:    seg.Filename,
				PathURL: "file://" + filepath.ToSlash(filepath.Join(opts.AudioDir, seg.Filename)),
				Rate:    xmlRate{Timebase: opts.SampleRate, NTSC: "FALSE"},
				Media: xmlFileMedia{
					Audio: xmlFileAudio{
						ChannelCount: 1,
						SampleCharacteristics: xmlSampleCharacteristics{
							SampleRate: opts.SampleRate,
							SampleSize: 16,
						},
					},
				},
			},
			SourceTrack: xmlSourceTrack{MediaType: "audio", TrackIndex: 1},
		})
	}

	return xmlXMEML{
		Version: "4",
		Sequence: xmlSequence{
			UUID:     uuid.NewString(),
			Duration: timecode.SecondsToFrames(timeline.TotalDuration(segments), opts.FrameRate),
			Name:     name,
			Rate:     seqRate,
			Media: xmlMedia{
				Audio: xmlAudio{Tracks: []xmlTrack{{ClipItems: clips}}},
			},
		},
	}
}

// WriteFCP7XML writes the sequence document for NLE import.
func WriteFCP7XML(path string, segments []timeline.Segment, opts XMLOptions) error {
	doc := BuildFCP7(segments, opts)
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal fcp7 xml: %w", err)
	}
	payload := append([]byte(xml.Header), data...)
	payload = append(payload, '\n')
	return writeFile(path, payload)
}
