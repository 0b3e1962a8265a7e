package jobwork

// RegisterAllJobWorkers registers every JobWorker with the given registry.
func RegisterAllJobWorkers(registry *JobWorkerRegistry) {
	registry.Register(NewConstructionHandler())
	registry.Register(NewGatheringHandler())
	registry.Register(NewSalvageHandler())
	registry.Register(NewSupplyHandler())
	registry.Register(NewHaulHandler())
	registry.Register(NewRelocateHandler())
	registry.Register(NewCraftingFetchHandler())
	registry.Register(NewCraftingWorkHandler())
	registry.Register(NewPlaceFurnitureHandler())
	registry.Register(NewInstallFurnitureHandler())
	registry.Register(NewRecreationHandler())
	registry.Register(NewTrainingHandler())
	registry.Register(NewCombatHandler())
	registry.Register(NewCookingHandler())
}
