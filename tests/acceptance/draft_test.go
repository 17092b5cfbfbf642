package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/runwayrivets/pictopost-api/internal/dto"
)

func (s *Suite) uploadDrafts(userID string, filenames ...string) *dto.UploadResponse {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range filenames {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, name))
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		s.Require().NoError(err)
		_, err = part.Write([]byte("fake-image-bytes"))
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())

	resp, err := http.Post(
		fmt.Sprintf("%s/api/v1/users/%s/drafts", s.BaseURL, userID),
		writer.FormDataContentType(),
		&buf,
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var uploadResp dto.UploadResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&uploadResp))
	return &uploadResp
}

func (s *Suite) TestUploadAndListDrafts() {
	s.createUser("acc-draft-1")

	uploadResp := s.uploadDrafts("acc-draft-1", "front.jpg", "back.png")
	s.Equal(2, uploadResp.Count)
	for _, file := range uploadResp.Files {
		s.True(file.Accepted)
		s.NotEmpty(file.Stored)
	}

	resp, err := http.Get(s.BaseURL + "/api/v1/users/acc-draft-1/drafts")
	s.Require().NoError(err)
	defer resp.Body.Close()

	var listResp dto.DraftListResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&listResp))
	s.Equal(2, listResp.Count)
	s.Equal(10, listResp.MaxAllowed)
}

func (s *Suite) TestUploadDraft_RejectsBadExtension() {
	s.createUser("acc-draft-2")

	uploadResp := s.uploadDrafts("acc-draft-2", "notes.txt")
	s.Equal(0, uploadResp.Count)
	s.Require().Len(uploadResp.Files, 1)
	s.False(uploadResp.Files[0].Accepted)
	s.NotEmpty(uploadResp.Files[0].Error)
}

func (s *Suite) TestServeAndDeleteDraft() {
	s.createUser("acc-draft-3")

	uploadResp := s.uploadDrafts("acc-draft-3", "item.jpg")
	stored := uploadResp.Files[0].Stored

	serveURL := fmt.Sprintf("%s/api/v1/users/%s/drafts/%s", s.BaseURL, "acc-draft-3", stored)
	resp, err := http.Get(serveURL)
	s.Require().NoError(err)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("fake-image-bytes", string(data))

	req, _ := http.NewRequest(http.MethodDelete, serveURL, nil)
	delResp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	delResp.Body.Close()
	s.Equal(http.StatusOK, delResp.StatusCode)

	getResp, err := http.Get(serveURL)
	s.Require().NoError(err)
	getResp.Body.Close()
	s.Equal(http.StatusNotFound, getResp.StatusCode)
}

func (s *Suite) TestDeleteDraft_NotFound() {
	s.createUser("acc-draft-4")

	req, _ := http.NewRequest(http.MethodDelete,
		s.BaseURL+"/api/v1/users/acc-draft-4/drafts/20240101_000000_missing.jpg", nil)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
