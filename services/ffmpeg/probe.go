package ffmpeg

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/subtide/subtitle-flows/cache"
	"github.com/subtide/subtitle-flows/utils"
)

type FFProbeStream struct {
	Index          int    `json:"index"`
	CodecName      string `json:"codec_name"`
	CodecLongName  string `json:"codec_long_name"`
	CodecType      string `json:"codec_type"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	PixFmt         string `json:"pix_fmt"`
	RFrameRate     string `json:"r_frame_rate"`
	AvgFrameRate   string `json:"avg_frame_rate"`
	TimeBase       string `json:"time_base"`
	Duration       string `json:"duration"`
	BitRate        string `json:"bit_rate"`
	NbFrames       string `json:"nb_frames"`
	Channels       int    `json:"channels"`
	ChannelLayout  string `json:"channel_layout"`
	SampleRate     string `json:"sample_rate"`
	CodecTagString string `json:"codec_tag_string"`
	Tags           struct {
		Language    string `json:"language"`
		HandlerName string `json:"handler_name"`
		Duration    string `json:"DURATION"`
	} `json:"tags"`
}

type FFProbeResult struct {
	Streams []FFProbeStream `json:"streams"`
	Format  struct {
		Filename       string `json:"filename"`
		NbStreams      int    `json:"nb_streams"`
		FormatName     string `json:"format_name"`
		FormatLongName string `json:"format_long_name"`
		StartTime      string `json:"start_time"`
		Duration       string `json:"duration"`
		Size           string `json:"size"`
		BitRate        string `json:"bit_rate"`
	} `json:"format"`
}

func doProbe(path string) (*FFProbeResult, error) {
	cmd := exec.Command(
		"ffprobe",
		"-hide_banner",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	result, err := utils.ExecuteCmd(cmd, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't execute ffprobe %s, %s", path, err.Error())
	}

	var info FFProbeResult
	err = json.Unmarshal([]byte(result), &info)

	return &info, err
}

// ProbeFile returns information about the specified media file. Requires ffprobe present.
// The cache key includes size and mtime because job inputs are rewritten under reused names.
func ProbeFile(filePath string) (*FFProbeResult, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("probe:%s:%d:%d", filePath, stat.Size(), stat.ModTime().UnixNano())
	return cache.GetOrSet(key, func() (*FFProbeResult, error) {
		return doProbe(filePath)
	})
}

func GetStreamInfo(path string) (StreamInfo, error) {
	info, err := ProbeFile(path)
	if err != nil {
		return StreamInfo{}, err
	}
	return ProbeResultToInfo(info), nil
}

// StreamInfo probes a file previously written into the engine workspace.
func (s *Service) StreamInfo(name string) (StreamInfo, error) {
	path, err := s.resolve(name)
	if err != nil {
		return StreamInfo{}, err
	}
	return GetStreamInfo(path)
}
