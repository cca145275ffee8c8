package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dkazlou/gearhub/internal/client/models"
)

// ShowGarage syncs the vehicle list (falling back to the local cache when
// the backend is unreachable) and prints it.
func (a *App) ShowGarage(ctx context.Context) {
	a.garage.Load(ctx)

	vehicles := a.garage.Vehicles()
	if len(vehicles) == 0 {
		fmt.Println("Garage is empty. Try 'addcar'.")
		return
	}

	for i, v := range vehicles {
		sync := "local only"
		if v.BackendID != nil {
			sync = fmt.Sprintf("#%d", *v.BackendID)
		}
		fmt.Printf("%2d. %s — %d hp, stage %d (%s)\n", i, v.Name, v.Horsepower, v.Stage, sync)
	}
}

// AddCar appends a placeholder vehicle and drops straight into the editor,
// mirroring the mobile flow of tapping "+" and editing the new card.
func (a *App) AddCar(ctx context.Context) {
	index := a.garage.AddPlaceholder(ctx)
	fmt.Printf("Added vehicle at slot %d\n", index)
	a.editAt(ctx, index)
}

// EditCar edits the vehicle at the given index.
func (a *App) EditCar(ctx context.Context, args []string) {
	index, ok := a.parseIndex(args)
	if !ok {
		fmt.Println("Usage: editcar <index>")
		return
	}
	a.editAt(ctx, index)
}

func (a *App) editAt(ctx context.Context, index int) {
	vehicles := a.garage.Vehicles()
	if index < 0 || index >= len(vehicles) {
		fmt.Println("No vehicle at index", index)
		return
	}
	current := vehicles[index]

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", current.Name), os.Stdout)
	if err != nil {
		return
	}
	if name != "" {
		current.Name = name
	}

	description, err := getSimpleText(a.reader, fmt.Sprintf("Description [%s]", current.Description), os.Stdout)
	if err != nil {
		return
	}
	if description != "" {
		current.Description = description
	}

	hp, err := GetInt(a.reader, fmt.Sprintf("Horsepower [%d]", current.Horsepower), current.Horsepower, os.Stdout)
	if err != nil {
		return
	}
	current.Horsepower = hp

	stage, err := GetInt(a.reader, fmt.Sprintf("Stage 0-3 [%d]", current.Stage), current.Stage, os.Stdout)
	if err != nil {
		return
	}
	if stage >= models.StageStock && stage <= models.StageMax {
		current.Stage = stage
	}

	// local commit always succeeds; backend sync is best-effort
	var imageBytes []byte
	imagePath, err := getSimpleText(a.reader, "Image file (empty to skip)", os.Stdout)
	if err == nil && imagePath != "" {
		imageBytes, err = os.ReadFile(imagePath)
		if err != nil {
			fmt.Println("Could not read image:", err)
			imageBytes = nil
		}
	}

	if err := a.garage.Update(ctx, index, current, imageBytes); err != nil {
		fmt.Println("Edit failed:", err)
		return
	}
	fmt.Println("Saved")
}

// DeleteCar removes the vehicle at the given index. The local record goes
// away even when the backend delete does not succeed.
func (a *App) DeleteCar(ctx context.Context, args []string) {
	index, ok := a.parseIndex(args)
	if !ok {
		fmt.Println("Usage: delcar <index>")
		return
	}
	a.garage.Remove(ctx, []int{index})
	fmt.Println("Removed")
}

func (a *App) parseIndex(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return index, true
}
