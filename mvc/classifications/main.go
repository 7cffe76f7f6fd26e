package classifications

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"snpit/contexts"
	"snpit/models/classify"
	"snpit/models/dtos"
	errorsDto "snpit/models/dtos/errors"
	"snpit/mvc"

	"github.com/labstack/echo"
	"github.com/labstack/gommon/log"
)

// ClassifyUpload classifies a sample posted as the multipart `file` field
// and answers with the result right away.
func ClassifyUpload(c echo.Context) error {
	fmt.Printf("[%s] - ClassifyUpload hit!\n", time.Now())
	cz, opts, includeRankings := mvc.RetrieveCommonElements(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorsDto.CreateSimpleBadRequest("Missing 'file' form field!"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorsDto.CreateSimpleBadRequest(err.Error()))
	}
	defer file.Close()

	result, err := cz.Classify(file, fileHeader.Filename, opts)
	if err != nil {
		log.Errorf("Classifying upload %s: %v", fileHeader.Filename, err)
		status, body := mvc.StatusForClassificationError(err)
		return c.JSON(status, body)
	}

	return c.JSON(http.StatusOK, dtos.NewClassificationResultDto(fileHeader.Filename, result, includeRankings))
}

// ClassificationsRun queues one classification per requested file found
// under the sample directory.
func ClassificationsRun(c echo.Context) error {
	fmt.Printf("[%s] - ClassificationsRun hit!\n", time.Now())
	gc := c.(*contexts.SnpitContext)
	cz, opts, _ := mvc.RetrieveCommonElements(c)

	// verify every file exists before queueing anything
	for _, fileName := range gc.FileNames {
		info, err := os.Stat(filepath.Join(gc.Config.Api.SamplePath, fileName))
		if err != nil || info.IsDir() {
			return c.JSON(http.StatusBadRequest, errorsDto.CreateSimpleBadRequest(fmt.Sprintf("file %s not found! Aborted", fileName)))
		}
	}

	responseDtos := []classify.ClassificationResponseDTO{}
	for _, fileName := range gc.FileNames {
		if cz.FilenameAlreadyRunning(fileName) {
			responseDtos = append(responseDtos, classify.ClassificationResponseDTO{
				Filename: fileName,
				Message:  "Already being classified..",
				State:    classify.Error,
			})
			continue
		}

		request := cz.QueueFile(fileName, opts)
		responseDtos = append(responseDtos, classify.ClassificationResponseDTO{
			Id:       request.Id,
			Filename: fileName,
			Message:  "Successfully queued..",
			State:    request.State,
		})
	}

	return c.JSON(http.StatusOK, responseDtos)
}

func GetAllClassificationRequests(c echo.Context) error {
	fmt.Printf("[%s] - GetAllClassificationRequests hit!\n", time.Now())
	cz, _, _ := mvc.RetrieveCommonElements(c)

	return c.JSON(http.StatusOK, cz.GetAllRequests())
}

// GetClassificationRequest looks a request up in memory first and falls
// back to the archive once the request has been purged.
func GetClassificationRequest(c echo.Context) error {
	fmt.Printf("[%s] - GetClassificationRequest hit!\n", time.Now())
	cz, _, _ := mvc.RetrieveCommonElements(c)
	id := c.Param("id")

	if request, ok := cz.GetRequest(id); ok {
		return c.JSON(http.StatusOK, request)
	}

	archived, err := cz.LookupArchived(c.Request().Context(), id)
	if err != nil {
		log.Errorf("Looking up archived classification %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, errorsDto.CreateSimpleInternalServerError(err.Error()))
	}
	if archived == nil {
		return c.JSON(http.StatusNotFound, errorsDto.CreateSimpleNotFound(fmt.Sprintf("Classification request %s not found", id)))
	}

	return c.JSON(http.StatusOK, archived)
}
