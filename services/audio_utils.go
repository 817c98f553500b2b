package services

import (
	"fmt"
	"io"
	"net/http"
	"time"

	tcmp3 "github.com/tcolgate/mp3"
)

var audioFetchClient = &http.Client{Timeout: 30 * time.Second}

// Tính thời lượng file MP3 từ URL công khai, trả về số giây
func GetMP3DurationFromURL(url string) (float64, error) {
	resp, err := audioFetchClient.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("không tải được file audio: status=%d", resp.StatusCode)
	}

	var (
		dur     float64
		dec     = tcmp3.NewDecoder(resp.Body)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}
